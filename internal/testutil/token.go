package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSigningKey = "test-signing-key"

// MakeToken signs a HS256 token carrying the given claims.
func MakeToken(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// MakeAccessToken signs a token expiring after ttl with the given roles.
// Every call returns a distinct token.
func MakeAccessToken(t testing.TB, ttl time.Duration, roles ...string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"exp":      time.Now().Add(ttl).Unix(),
		"username": "user@example.com",
		"jti":      uuid.NewString(),
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}
	return MakeToken(t, claims)
}
