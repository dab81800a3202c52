package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParse_BuildsUserContext(t *testing.T) {
	s := NewJWTService("secret")
	token := sign(t, "secret", Claims{
		Username:         "reviewer",
		Roles:            []string{"reviewer"},
		Permissions:      []string{"translation.review"},
		LanguagesAllowed: []string{"English", "French"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "reviewer", user.Username)
	assert.Equal(t, []string{"translation.review"}, user.Permissions)
	assert.Equal(t, []string{"English", "French"}, user.LanguagesAllowed)
	assert.Equal(t, token, user.AccessToken)
	assert.NotEmpty(t, user.PermissionRules, "stock rule table is attached")
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	s := NewJWTService("secret")
	token := sign(t, "other-secret", Claims{Username: "x"})
	_, err := s.Parse(token)
	assert.Error(t, err)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	s := NewJWTService("secret")
	token := sign(t, "secret", Claims{
		Username: "x",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	_, err := s.Parse(token)
	assert.Error(t, err)
}
