package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenByteLength is the entropy of a session token in bytes. 32 bytes gives
// 256 bits, hex-encoded to 64 characters.
const tokenByteLength = 32

// NewSessionToken returns a cryptographically random opaque token.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
