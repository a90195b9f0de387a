package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", "organizer", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "organizer", claims.Role)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue("user-456", "a@example.com", "admin", time.Hour)
	require.NoError(t, err)

	userID, email, role, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
	assert.Equal(t, "a@example.com", email)
	assert.Equal(t, "admin", role)
}

func TestJWTVerifier_Verify_WrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("secret-a")
	verifier := NewJWTVerifier("secret-b")

	token, err := issuer.Issue("user-456", "a@example.com", "user", time.Hour)
	require.NoError(t, err)

	_, _, _, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_Expired(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue("user-789", "e@example.com", "user", -time.Minute)
	require.NoError(t, err)

	_, _, _, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_Garbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	_, _, _, err := verifier.Verify("not-a-token")
	assert.Error(t, err)
}
