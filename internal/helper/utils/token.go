package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomToken returns n bytes of cryptographically secure randomness,
// hex-encoded. Reset tokens use n=32 (256 bits).
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
