package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword_Bcrypt(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "wrong_password"))
}

func TestCheckPassword_Plaintext(t *testing.T) {
	assert.False(t, IsBcryptHash("admin123"))
	assert.True(t, CheckPassword("admin123", "admin123"))
	assert.False(t, CheckPassword("admin123", "admin1234"))
	assert.False(t, CheckPassword("admin123", ""))
}
