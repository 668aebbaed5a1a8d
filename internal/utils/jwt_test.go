package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@gmail.com", "Ann", "secret", 24*time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@gmail.com", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@gmail.com", "Ann", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", "a@gmail.com", "Ann", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "user-1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseJWT(signed, "secret")
	assert.Error(t, err)
}
