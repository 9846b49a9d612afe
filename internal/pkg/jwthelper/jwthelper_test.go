package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	signed, err := GenerateToken(key, 42, "curl/8.0")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseToken(key, signed)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseToken_WrongKey(t *testing.T) {
	signed, err := GenerateToken([]byte("key-one"), 42, "curl/8.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), signed)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("test-signing-key"), "not.a.token")
	assert.Error(t, err)
}
