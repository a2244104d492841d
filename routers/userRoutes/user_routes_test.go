package userRoutes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	userControllers "lms/controllers/userControllers"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/routers/userRoutes"
	"lms/store"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	users  *store.UserStore
	tokens *middleware.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Env:         "development",
		JWTSecret:   "test-secret",
		JWTTTLHours: 1,
		BcryptCost:  4,
	}
	users := store.NewUserStore(db, cfg.BcryptCost)
	tokens := middleware.NewTokenService(cfg.JWTSecret, cfg.JWTTTLHours)
	auth := middleware.Authenticate(tokens, users, nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(false)})
	userRoutes.SetupUserRoutes(app, userControllers.New(cfg, users, tokens, nil), auth)

	return &testEnv{app: app, db: db, users: users, tokens: tokens}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, *envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	env := new(envelope)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(env))
	return resp, env
}

func register(t *testing.T, env *testEnv, email string) string {
	t.Helper()

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/register", fiber.Map{
		"email":    email,
		"password": "Sup3r$ecret",
		"name":     "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "alice@example.com")

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "Sup3r$ecret",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Status)

	var data struct {
		Token string          `json:"token"`
		User  map[string]any  `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "alice@example.com", data.User["email"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "bob@example.com")

	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/users/register", fiber.Map{
		"email":    "bob@example.com",
		"password": "An0ther$ecret",
		"name":     "Bob Again",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/users/register", fiber.Map{
		"email":    "carol@example.com",
		"password": "weakpass",
		"name":     "Carol",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginFailuresShareMessage(t *testing.T) {
	env := newTestEnv(t)
	register(t, env, "dave@example.com")

	cases := []fiber.Map{
		{"email": "dave@example.com", "password": "Wr0ng$ecret"},
		{"email": "nobody@example.com", "password": "Sup3r$ecret"},
	}
	for _, payload := range cases {
		resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/login", payload, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", body.Message)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access token is required", body.Message)

	resp, body = doJSON(t, env.app, http.MethodGet, "/api/users/profile", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", body.Message)
}

func TestDeactivatedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	token := register(t, env, "erin@example.com")

	user, err := env.users.FindByEmail("erin@example.com")
	require.NoError(t, err)
	_, err = env.users.Update(user.ID, map[string]interface{}{"is_active": false})
	require.NoError(t, err)

	resp, _ := doJSON(t, env.app, http.MethodGet, "/api/users/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGate(t *testing.T) {
	env := newTestEnv(t)
	studentToken := register(t, env, "frank@example.com")

	resp, _ := doJSON(t, env.app, http.MethodGet, "/api/users/", nil, studentToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin, err := env.users.Create("admin@example.com", "Sup3r$ecret", "Admin", models.RoleAdmin)
	require.NoError(t, err)
	adminToken, err := env.tokens.Issue(admin.ID)
	require.NoError(t, err)

	resp, _ = doJSON(t, env.app, http.MethodGet, "/api/users/", nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	env := newTestEnv(t)

	admin, err := env.users.Create("admin@example.com", "Sup3r$ecret", "Admin", models.RoleAdmin)
	require.NoError(t, err)
	adminToken, err := env.tokens.Issue(admin.ID)
	require.NoError(t, err)

	resp, _ := doJSON(t, env.app, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPut, fmt.Sprintf("/api/users/%d/role", admin.ID),
		fiber.Map{"role": "instructor"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := register(t, env, "grace@example.com")

	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/users/change-password", fiber.Map{
		"current_password": "Wr0ng$ecret",
		"new_password":     "N3w$ecretPass",
	}, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/change-password", fiber.Map{
		"current_password": "Sup3r$ecret",
		"new_password":     "N3w$ecretPass",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/login", fiber.Map{
		"email":    "grace@example.com",
		"password": "N3w$ecretPass",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
