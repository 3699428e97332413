package utils

import (
	"testing"

	"clinio/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	access, err := GenerateAccessToken("user-1", "pat@example.com")
	require.NoError(t, err)
	refresh, err := GenerateRefreshToken("user-1", "pat@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	sub, err := ExtractIDFromToken(access, "access")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	sub, err = ExtractIDFromToken(refresh, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestExtractIDFromTokenRejectsWrongType(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	refresh, err := GenerateRefreshToken("user-1", "pat@example.com")
	require.NoError(t, err)

	// A refresh token must never pass as an access token.
	_, err = ExtractIDFromToken(refresh, "access")
	assert.Error(t, err)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	access, err := GenerateAccessToken("user-1", "pat@example.com")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "other-secret"
	_, err = ExtractIDFromToken(access, "access")
	assert.Error(t, err)

	config.AppConfig.JWTSecret = "test-secret"
	_, err = ExtractIDFromToken(access+"x", "access")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("abc")
	h2 := HashToken("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("abd"))
}
