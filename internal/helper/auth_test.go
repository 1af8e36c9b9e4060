package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenPair(t *testing.T) {
	auth := SetupAuth("test-secret", 60)

	tokens, err := auth.GenerateTokenPair("alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
	assert.Equal(t, int64(3600), tokens.AccessTokenExpires)
	assert.Equal(t, int64(7*24*3600), tokens.RefreshTokenExpires)

	claims, err := auth.VerifyToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)

	claims, err = auth.VerifyToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestGenerateTokenPairMissingIdentity(t *testing.T) {
	auth := SetupAuth("test-secret", 60)

	_, err := auth.GenerateTokenPair("", "alice@example.com")
	assert.Error(t, err)
	_, err = auth.GenerateTokenPair("alice", "")
	assert.Error(t, err)
}

func TestVerifyTokenBearerPrefix(t *testing.T) {
	auth := SetupAuth("test-secret", 60)

	tokens, err := auth.GenerateTokenPair("bob", "bob@example.com")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", claims.Email)

	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
	_, err = auth.VerifyToken("")
	assert.Error(t, err)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	auth := SetupAuth("test-secret", 60)
	other := SetupAuth("another-secret", 60)

	tokens, err := auth.GenerateTokenPair("bob", "bob@example.com")
	require.NoError(t, err)

	_, err = other.VerifyToken(tokens.AccessToken)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	auth := Auth{Secret: "test-secret", AccessTTL: -time.Minute}

	tokens, err := auth.GenerateAccessToken("bob", "bob@example.com")
	require.NoError(t, err)

	_, err = auth.VerifyToken(tokens.AccessToken)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret", 60)

	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, auth.VerifyPassword("s3cret-pass", hash))
	assert.Error(t, auth.VerifyPassword("s3cret-pasS", hash))
	assert.Error(t, auth.VerifyPassword("", hash))
}
