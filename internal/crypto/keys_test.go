package crypto

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyManager_LoadFromEnv(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	t.Setenv(KeyEnvVar, base64.StdEncoding.EncodeToString(key))

	m := NewKeyManager(filepath.Join(t.TempDir(), ".env"))
	got, err := m.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestKeyManager_GeneratePersistsBeforeReturning(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	os.Unsetenv(KeyEnvVar)

	envFile := filepath.Join(t.TempDir(), ".env")
	m := NewKeyManager(envFile)

	key, err := m.LoadOrCreate()
	require.NoError(t, err)
	require.Len(t, key, KeySize)

	// The env file must already hold the key: a restart loads the same
	// value godotenv-style.
	vars, err := godotenv.Read(envFile)
	require.NoError(t, err)
	persisted, err := base64.StdEncoding.DecodeString(vars[KeyEnvVar])
	require.NoError(t, err)
	assert.Equal(t, key, persisted)

	// A second load in the same process finds the key too.
	again, err := m.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestKeyManager_AppendsToExistingEnvFile(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	os.Unsetenv(KeyEnvVar)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9090\n"), 0o600))

	key, err := NewKeyManager(envFile).LoadOrCreate()
	require.NoError(t, err)

	vars, err := godotenv.Read(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", vars["SERVER_PORT"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(key), vars[KeyEnvVar])
}

func TestKeyManager_RejectsMalformedKey(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(KeyEnvVar, tt.value)
			_, err := NewKeyManager(filepath.Join(t.TempDir(), ".env")).LoadOrCreate()
			assert.Error(t, err)
		})
	}
}
