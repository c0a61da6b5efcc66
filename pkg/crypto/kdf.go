package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey expands an operator supplied secret into a fixed-length key bound to
// purpose. Different purposes yield independent keys from the same secret.
func DeriveKey(secret, purpose string, length int) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("crypto: secret is required")
	}
	if strings.TrimSpace(purpose) == "" {
		return nil, errors.New("crypto: key purpose is required")
	}
	switch length {
	case 16, 24, 32, 64:
	default:
		return nil, fmt.Errorf("crypto: key length must be 16, 24, 32, or 64 bytes (got %d)", length)
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("crypto: derive key: %w", err)
	}
	return key, nil
}
