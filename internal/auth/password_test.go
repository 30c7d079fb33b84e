package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("secretpw1")
	require.NoError(t, err)

	assert.True(t, h.Check("secretpw1", digest))
	assert.False(t, h.Check("secretpw2", digest))
}

func TestPasswordHashSaltFreshness(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	d1, err := h.Hash("secretpw1")
	require.NoError(t, err)
	d2, err := h.Hash("secretpw1")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "two hashes of the same password must differ")
	assert.True(t, h.Check("secretpw1", d1))
	assert.True(t, h.Check("secretpw1", d2))
}

func TestPasswordCheckMalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Check("secretpw1", ""))
	assert.False(t, h.Check("secretpw1", "not-a-bcrypt-digest"))
}

func TestPasswordHasherCostOutOfRange(t *testing.T) {
	// Bogus costs fall back to the bcrypt default instead of failing later.
	h := NewPasswordHasher(-1)
	digest, err := h.Hash("secretpw1")
	require.NoError(t, err)
	assert.True(t, h.Check("secretpw1", digest))
}
