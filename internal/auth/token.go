package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes gives 160 bits of entropy per token, enough that collisions
// and brute-force guessing are not a practical concern.
const tokenBytes = 20

// NewToken returns a hex-encoded opaque token from a cryptographically
// secure source. Tokens are bearer secrets: they are only ever compared for
// exact equality and must not be logged.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
