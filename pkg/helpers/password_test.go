package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)
	require.True(t, strings.HasPrefix(hash, "$2a$10$"))

	require.True(t, CompareHashAndPassword(hash, "hunter22"))
	require.False(t, CompareHashAndPassword(hash, "hunter23"))
	require.False(t, CompareHashAndPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
