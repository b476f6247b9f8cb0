package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordCost("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected bcrypt encoded hash, got %q", hash)
	assert.NotContains(t, hash, "correct horse", "hash must not embed the plaintext")

	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("wrong horse", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordFreshSalt(t *testing.T) {
	first, err := HashPasswordCost("same password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPasswordCost("same password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
	assert.True(t, CheckPassword("same password", first))
	assert.True(t, CheckPassword("same password", second))
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not a bcrypt hash"))
}
