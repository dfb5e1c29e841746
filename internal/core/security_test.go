// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	valid, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same password")
	require.NoError(t, err)

	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("password", "not-an-encoded-hash")
	require.Error(t, err)
}

func TestVerifyPasswordTimingSafe_NilHash(t *testing.T) {
	t.Parallel()

	valid, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, rehash)
}

func TestVerifyPasswordTimingSafe_Valid(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	valid, _, err := VerifyPasswordTimingSafe("hunter2hunter2", &hash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestTokenHashing(t *testing.T) {
	t.Parallel()

	token, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	hash := HashToken(token)
	assert.NotEqual(t, token, hash)
	assert.True(t, CompareTokenHash(token, hash))
	assert.False(t, CompareTokenHash("different", hash))

	// hashing is deterministic so tokens can be looked up by hash
	assert.Equal(t, hash, HashToken(token))
}

func TestGenerateSecureToken_Distinct(t *testing.T) {
	t.Parallel()

	first, err := GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
