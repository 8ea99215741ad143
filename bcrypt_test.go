package auth_test

import (
	"testing"

	auth "github.com/circleGiven/jwt-study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("valid password", func(t *testing.T) {
		hash, err := auth.HashPassword("securePassword123!")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.NoError(t, auth.ComparePasswordAndHash("securePassword123!", hash))
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := auth.HashPassword("")
		assert.Error(t, err)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("testPassword123!")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, auth.ComparePasswordAndHash("testPassword123!", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("wrongPassword", hash)
		assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)
	})

	t.Run("invalid hash", func(t *testing.T) {
		assert.Error(t, auth.ComparePasswordAndHash("testPassword123!", "invalidhash"))
	})
}

func TestRandomPasswordHash(t *testing.T) {
	hash1 := auth.RandomPasswordHash()
	hash2 := auth.RandomPasswordHash()

	assert.NotEmpty(t, hash1)
	assert.NotEmpty(t, hash2)
	assert.NotEqual(t, hash1, hash2)
}
