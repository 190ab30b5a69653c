package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrGenerateKey loads or generates the PASETO v4 symmetric key for
// bearer tokens. The key is stored in <dataPath>/auth.key as a hex-encoded
// string. If the file doesn't exist, a new key is generated and saved.
// Returns the hex-encoded key ready for NewTokenService.
func LoadOrGenerateKey(dataPath string) (string, error) {
	keyPath := filepath.Join(dataPath, "auth.key")

	// Try to load existing key.
	//#nosec G304 -- Auth key path is derived from the validated data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))

		if len(keyHex) != keyHexSize {
			return "", fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexSize, len(keyHex))
		}
		if _, err := hex.DecodeString(keyHex); err != nil {
			return "", fmt.Errorf("invalid auth key format: not valid hex: %w", err)
		}

		return keyHex, nil
	}

	// Generate new key (32 bytes = 256 bits for PASETO v4).
	key := make([]byte, keyBytesSize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate auth key: %w", err)
	}

	keyHex := hex.EncodeToString(key)

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	// Restricted permissions: the key decrypts every bearer token.
	if err := os.WriteFile(keyPath, []byte(keyHex), 0o600); err != nil {
		return "", fmt.Errorf("failed to save auth key: %w", err)
	}

	return keyHex, nil
}
