package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	hasher := NewBcryptPasswordHasher(bcrypt.MinCost)
	verifier := NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("Abcdef12")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef12", hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, verifier.Verify("Abcdef12", hashed))
	assert.False(t, verifier.Verify("abcdef12", hashed))
}

func TestBcrypt_DefaultCost(t *testing.T) {
	h := NewBcryptPasswordHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
