package membership

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes gives 128 bits of entropy per invite token.
const tokenBytes = 16

// TokenFunc produces a fresh, unguessable invite token.
type TokenFunc func() (string, error)

// RandomToken returns a hex-encoded 128-bit random value.
func RandomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
