package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securecampus/internal/auth"
)

func TestHasher_NeverStoresPlaintext(t *testing.T) {
	h := auth.NewHasher(4) // min cost, keeps the test fast

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.NotContains(t, hash, "password123")
}

func TestHasher_VerifyRoundTrip(t *testing.T) {
	h := auth.NewHasher(4)

	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.True(t, h.Verify("password123", hash))
	assert.False(t, h.Verify("password124", hash))

	other, err := h.Hash("another-password")
	require.NoError(t, err)
	assert.False(t, h.Verify("password123", other))
}

func TestHasher_SaltUniqueness(t *testing.T) {
	h := auth.NewHasher(4)

	first, err := h.Hash("password123")
	require.NoError(t, err)
	second, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
