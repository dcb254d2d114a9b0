package token

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.RegisteredClaims) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tokenStr := signedToken(t, jwtlib.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwtlib.NewNumericDate(exp),
	})

	got, err := ExpiresAt(tokenStr)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAt_NoExpiryClaim(t *testing.T) {
	tokenStr := signedToken(t, jwtlib.RegisteredClaims{Subject: "42"})

	_, err := ExpiresAt(tokenStr)
	assert.Error(t, err)
}

func TestExpiresAt_Garbage(t *testing.T) {
	_, err := ExpiresAt("not-a-jwt")
	assert.Error(t, err)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live := signedToken(t, jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour))})
	stale := signedToken(t, jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(now.Add(-time.Hour))})

	assert.False(t, Expired(live, now))
	assert.True(t, Expired(stale, now))
	assert.True(t, Expired("not-a-jwt", now))
}
