package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	h, err := HashPassword("123456")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(h, "123456"))
	assert.False(t, CompareHashAndPassword(h, "1234567"))
}

func TestNewResetToken(t *testing.T) {
	raw, hashed, err := NewResetToken()
	require.NoError(t, err)
	assert.Len(t, raw, 40)
	assert.Len(t, hashed, 64)
	assert.Equal(t, hashed, HashResetToken(raw))

	other, _, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}
