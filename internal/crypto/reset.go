package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a reset token; hex encoding doubles the
// string length.
const resetTokenBytes = 20

// NewResetToken generates a single-use password-reset token: 20 random bytes,
// hex encoded.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
