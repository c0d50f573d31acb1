package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NotContains(t, hash, "secret1")

	assert.True(t, hasher.Verify("secret1", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("secret1")
	require.NoError(t, err)
	second, err := hasher.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("secret1", first))
	assert.True(t, hasher.Verify("secret1", second))
}

func TestBcryptHasher_VerifyGarbageHash(t *testing.T) {
	hasher := NewBcryptHasher()
	assert.False(t, hasher.Verify("secret1", "not a bcrypt hash"))
}
