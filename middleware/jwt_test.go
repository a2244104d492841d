package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", 24)

	signed, err := tokens.Issue(42)
	require.NoError(t, err)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", 24)
	tokens.TTL = -time.Minute

	signed, err := tokens.Issue(42)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret", 24)
	other := NewTokenService("other-secret", 24)

	signed, err := tokens.Issue(42)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokenService("test-secret", 24)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(bad)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}
