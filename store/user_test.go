package store

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	user, err := users.Create("Alice@Example.COM", "Sup3r$ecret", "Alice", "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "Sup3r$ecret", *user.PasswordHash)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	_, err := users.Create("bob@example.com", "Sup3r$ecret", "Bob", "")
	require.NoError(t, err)

	_, err = users.Create("BOB@example.com", "An0ther$ecret", "Bobby", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserStoreInvalidRole(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	_, err := users.Create("carol@example.com", "Sup3r$ecret", "Carol", "superuser")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserStoreVerifyPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	user, err := users.Create("dave@example.com", "Sup3r$ecret", "Dave", "")
	require.NoError(t, err)

	assert.True(t, users.VerifyPassword("Sup3r$ecret", *user.PasswordHash))
	assert.False(t, users.VerifyPassword("wrong-password", *user.PasswordHash))
}

func TestUserStoreUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	user, err := users.Create("erin@example.com", "Sup3r$ecret", "Erin", "")
	require.NoError(t, err)

	require.NoError(t, users.UpdatePassword(user.ID, "N3w$ecretPass"))

	fresh, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, users.VerifyPassword("N3w$ecretPass", *fresh.PasswordHash))
	assert.False(t, users.VerifyPassword("Sup3r$ecret", *fresh.PasswordHash))
}

func TestUserStorePartialUpdate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	user, err := users.Create("frank@example.com", "Sup3r$ecret", "Frank", "")
	require.NoError(t, err)

	t.Run("empty set rejected", func(t *testing.T) {
		_, err := users.Update(user.ID, map[string]interface{}{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		_, err := users.Update(user.ID, map[string]interface{}{"email": "hax@example.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid fields applied", func(t *testing.T) {
		updated, err := users.Update(user.ID, map[string]interface{}{
			"name":      "Franklin",
			"is_active": false,
		})
		require.NoError(t, err)
		assert.Equal(t, "Franklin", updated.Name)
		assert.False(t, updated.IsActive)
	})

	t.Run("bad role rejected", func(t *testing.T) {
		_, err := users.Update(user.ID, map[string]interface{}{"role": "root"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserStoreDelete(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	user, err := users.Create("grace@example.com", "Sup3r$ecret", "Grace", "")
	require.NoError(t, err)

	require.NoError(t, users.Delete(user.ID))
	_, err = users.FindByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, users.Delete(user.ID), ErrNotFound)
}

func TestUserStoreOAuth(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	_, err := users.FindByOAuth("sub-123", "google")
	assert.ErrorIs(t, err, ErrNotFound)

	user, err := users.CreateOAuth(OAuthProfile{
		Subject:  "sub-123",
		Provider: "google",
		Email:    "Heidi@Example.com",
		Name:     "Heidi",
		Avatar:   "https://example.com/pic.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "heidi@example.com", user.Email)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Nil(t, user.PasswordHash)

	found, err := users.FindByOAuth("sub-123", "google")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserStoreCountActiveSince(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, 4)

	active, err := users.Create("ivan@example.com", "Sup3r$ecret", "Ivan", "")
	require.NoError(t, err)
	_, err = users.Create("judy@example.com", "Sup3r$ecret", "Judy", "")
	require.NoError(t, err)

	require.NoError(t, users.TouchLastLogin(active.ID))

	count, err := users.CountActiveSince(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
