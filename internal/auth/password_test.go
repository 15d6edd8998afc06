package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	for _, plain := range []string{"Secret123", "admin123", "ünïcødé-pässwörd", " "} {
		digest, err := hasher.Hash(plain)
		require.NoError(t, err)

		assert.True(t, hasher.Verify(plain, digest))
		assert.False(t, hasher.Verify(plain+"x", digest))
		assert.False(t, hasher.Verify("", digest))
	}
}

func TestPasswordHasher_SaltsEveryDigest(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	first, err := hasher.Hash("Secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Secret123", first))
	assert.True(t, hasher.Verify("Secret123", second))

	cost, err := bcrypt.Cost([]byte(first))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	assert.False(t, hasher.Verify("Secret123", ""))
	assert.False(t, hasher.Verify("Secret123", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("Secret123", "$2a$10$short"))
}

func TestNewPasswordHasher_FallsBackOnInvalidCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}
