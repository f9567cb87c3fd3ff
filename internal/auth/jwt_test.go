package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	return NewTokenManager("test-secret", time.Hour, "customer-service")
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.GenerateToken("68a1f0c2b7e4d9a3c5f01234", "john@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "68a1f0c2b7e4d9a3c5f01234", claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "68a1f0c2b7e4d9a3c5f01234", claims.Subject)
	assert.Equal(t, "customer-service", claims.Issuer)
}

func TestTokenManager_UsesConfiguredTTL(t *testing.T) {
	ttl := 2 * time.Hour
	tm := NewTokenManager("test-secret", ttl, "customer-service")

	start := time.Now()

	token, err := tm.GenerateToken("68a1f0c2b7e4d9a3c5f01234", "john@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	expectedExpiry := start.Add(ttl)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other := NewTokenManager("other-secret", time.Hour, "customer-service")

	token, err := tm.GenerateToken("68a1f0c2b7e4d9a3c5f01234", "john@example.com", "customer")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongIssuer(t *testing.T) {
	foreign := NewTokenManager("test-secret", time.Hour, "some-other-service")
	tm := newTestManager(t)

	// Same secret, different issuer. Must still be rejected.
	token, err := foreign.GenerateToken("68a1f0c2b7e4d9a3c5f01234", "john@example.com", "customer")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, "customer-service")

	token, err := tm.GenerateToken("68a1f0c2b7e4d9a3c5f01234", "john@example.com", "customer")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := newTestManager(t)

	_, err := tm.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnsignedToken(t *testing.T) {
	tm := newTestManager(t)

	// Header {"alg":"none","typ":"JWT"} with an empty signature. The parser
	// pins HS256, so the algorithm itself is rejected.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiI2OGExZjBjMmI3ZTRkOWEzYzVmMDEyMzQifQ."
	_, err := tm.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
