package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// ResetTokenBytes is the number of random bytes behind a password-reset
// token; hex-encoded the token is twice as long.
const ResetTokenBytes = 20

// GenerateResetToken returns a cryptographically random opaque token.
func GenerateResetToken() (string, error) {
	b := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
