package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// KeyEnvVar names the environment variable holding the base64-encoded key.
const KeyEnvVar = "ENCRYPTION_KEY"

// KeyManager loads the process-wide encryption key, generating and persisting
// one on first start. The key is immutable for the process lifetime.
type KeyManager struct {
	envFile string
}

// NewKeyManager creates a key manager that persists generated keys to the
// given env file (the same file godotenv loads at startup).
func NewKeyManager(envFile string) *KeyManager {
	return &KeyManager{envFile: envFile}
}

// LoadOrCreate returns the key from ENCRYPTION_KEY, or generates a random
// 32-byte key, appends it to the env file, and returns it. The write happens
// before the key is handed out: ciphertext produced under a key that was
// never persisted would be undecryptable after a restart.
func (m *KeyManager) LoadOrCreate() ([]byte, error) {
	if encoded := os.Getenv(KeyEnvVar); encoded != "" {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", KeyEnvVar, err)
		}
		if len(key) != KeySize {
			return nil, fmt.Errorf("%s must decode to exactly %d bytes, got %d", KeyEnvVar, KeySize, len(key))
		}
		return key, nil
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(key)

	if err := m.persist(encoded); err != nil {
		return nil, fmt.Errorf("persist key: %w", err)
	}
	// Make the key visible to the current process the same way a restart
	// would see it.
	if err := os.Setenv(KeyEnvVar, encoded); err != nil {
		return nil, fmt.Errorf("set %s: %w", KeyEnvVar, err)
	}
	return key, nil
}

func (m *KeyManager) persist(encoded string) error {
	f, err := os.OpenFile(m.envFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "\n%s=%s\n", KeyEnvVar, encoded); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
