package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("unit-test-secret", 5, 1)

	token, err := GenerateAccessToken("U_alice")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "U_alice", claims.UserID)
	assert.Equal(t, "access_token", claims.Subject)
	assert.Empty(t, claims.TokenID)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	Init("unit-test-secret", 5, 1)

	token, tokenID, err := GenerateRefreshToken("U_alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", claims.Subject)
	assert.Equal(t, tokenID, claims.TokenID)

	// 每次生成的 tokenID 都不同
	_, tokenID2, err := GenerateRefreshToken("U_alice")
	require.NoError(t, err)
	assert.NotEqual(t, tokenID, tokenID2)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	Init("secret-one", 5, 1)
	token, err := GenerateAccessToken("U_alice")
	require.NoError(t, err)

	Init("secret-two", 5, 1)
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	// 负有效期直接生成已过期的 token
	Init("unit-test-secret", -1, 1)
	token, err := GenerateAccessToken("U_alice")
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
