package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestCheckPasswordHash_BadHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("secret1", "not-a-bcrypt-hash"))
}
