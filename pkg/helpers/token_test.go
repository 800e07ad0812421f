package helpers

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	tok, err := GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, tok, ResetTokenBytes*2)

	raw, err := hex.DecodeString(tok)
	require.NoError(t, err)
	require.Len(t, raw, ResetTokenBytes)

	other, err := GenerateResetToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}
