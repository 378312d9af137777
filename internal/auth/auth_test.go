package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hashed)

	assert.True(t, VerifyPassword("s3cret", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("s3cret")
	require.NoError(t, err)
	b, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
