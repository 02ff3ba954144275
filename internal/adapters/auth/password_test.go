package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64) // 32 bytes hex-encoded

	hash, err := h.Hash(salt, "secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.NoError(t, h.Compare(hash, salt, "secret1"))
	assert.Error(t, h.Compare(hash, salt, "wrong"))
	assert.Error(t, h.Compare(hash, "other-salt", "secret1"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	// The sha256 pre-hash keeps inputs under bcrypt's 72-byte limit.
	h := NewBcryptHasher(bcrypt.MinCost)
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	hash, err := h.Hash(salt, string(long))
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, salt, string(long)))
}
