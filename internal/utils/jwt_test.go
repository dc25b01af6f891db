package utils

import (
	"testing"
	"time"

	"event_management/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	p := domain.Principal{UserID: 7, Email: "ana@example.com", Role: domain.RoleAdmin}

	token, err := GenerateJWT(p, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, p, claims.Principal())
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(domain.Principal{UserID: 1}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(domain.Principal{UserID: 1}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT(domain.Principal{UserID: 1}, "", time.Hour)
	assert.Error(t, err)
}
