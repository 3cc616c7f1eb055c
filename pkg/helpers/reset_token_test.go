package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenResetToken(t *testing.T) {
	raw, hashed, err := GenResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, 40) // 20 random bytes, hex encoded
	assert.Len(t, hashed, 64)
	assert.Equal(t, HashResetToken(raw), hashed)
	assert.NotEqual(t, raw, hashed)
}

func TestGenResetTokenIsUnique(t *testing.T) {
	a, _, err := GenResetToken()
	require.NoError(t, err)
	b, _, err := GenResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)
	assert.True(t, CompareHashAndPassword(hash, "123456"))
	assert.False(t, CompareHashAndPassword(hash, "1234567"))
}
