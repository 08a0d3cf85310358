package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	h1, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	h2, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, h.Verify("correct horse battery staple", h1))
	assert.True(t, h.Verify("correct horse battery staple", h2))
}

func TestVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	assert.True(t, h.Verify("password123", hash))
	assert.False(t, h.Verify("password124", hash))
	assert.False(t, h.Verify("", hash))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, bad := range []string{"", "not-a-hash", "$argon2id$v=19$m=65536", "$2a$"} {
		assert.False(t, h.Verify("password123", bad), "hash %q must not verify", bad)
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(99)
	assert.Equal(t, PasswordCost, h.cost)

	h = NewHasher(0)
	assert.Equal(t, PasswordCost, h.cost)
}
