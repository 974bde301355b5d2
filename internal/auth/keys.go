// Package auth provides password hashing and session tokens.
package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// PASETO v4.local requires a 256-bit symmetric key.
const keyLength = 32

// hkdfInfo binds derived keys to their use so the same secret never yields the
// same bytes for a different purpose.
const hkdfInfo = "quotebook-server access token v4.local"

// ErrMissingSecret is returned when no signing secret has been configured.
var ErrMissingSecret = errors.New("API Secret not defined")

// DeriveKey stretches the configured API secret into a 32-byte token key.
func DeriveKey(secret string) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}

	key := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("derive token key: %w", err)
	}

	return key, nil
}
