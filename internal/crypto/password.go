// Package crypto provides password hashing for the auth layer.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters, interactive-login strength.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives a scrypt hash and returns it as "<hash>.<salt>" hex.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(derived) + "." + hex.EncodeToString(salt), nil
}

// VerifyPassword checks a password against a stored "<hash>.<salt>" value
// in constant time.
func VerifyPassword(password, stored string) (bool, error) {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false, fmt.Errorf("malformed password hash")
	}

	expected, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed password salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false, fmt.Errorf("failed to derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(derived, expected) == 1, nil
}
