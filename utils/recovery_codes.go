package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	RecoveryCodeLength = 8
	NumRecoveryCodes   = 10
)

// GenerateRecoveryCodes generates a set of random recovery codes for 2FA.
func GenerateRecoveryCodes() ([]string, error) {
	codes := make([]string, NumRecoveryCodes)

	for i := 0; i < NumRecoveryCodes; i++ {
		bytes := make([]byte, RecoveryCodeLength/2)
		if _, err := rand.Read(bytes); err != nil {
			return nil, err
		}

		code := strings.ToUpper(hex.EncodeToString(bytes))
		// Insert hyphen in middle for readability
		codes[i] = code[:4] + "-" + code[4:]
	}

	return codes, nil
}

// HashRecoveryCode hashes a single recovery code for storage.
func HashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(strings.ToUpper(strings.TrimSpace(code))))
	return hex.EncodeToString(sum[:])
}

// HashRecoveryCodes hashes recovery codes for storage.
func HashRecoveryCodes(codes []string) []string {
	hashed := make([]string, len(codes))
	for i, code := range codes {
		hashed[i] = HashRecoveryCode(code)
	}
	return hashed
}
