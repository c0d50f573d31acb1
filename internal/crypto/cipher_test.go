package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fittrack/internal/errors"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestCipher_RoundTrip(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	plaintexts := []string{
		"Running, Hiking",
		"Chest: 90 cm, Waist: 80 cm",
		"a",
		"contains unicode: naïve, 日本語, émigré",
		"multi\nline\ntext",
	}
	for _, pt := range plaintexts {
		t.Run(pt, func(t *testing.T) {
			ct, err := cipher.Encrypt(pt)
			require.NoError(t, err)
			assert.NotEqual(t, pt, ct)

			got, err := cipher.Decrypt(ct)
			require.NoError(t, err)
			assert.Equal(t, pt, got)
		})
	}
}

func TestCipher_EmptyPassthrough(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	ct, err := cipher.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", ct)

	pt, err := cipher.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", pt)
}

func TestCipher_NonDeterministic(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	first, err := cipher.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := cipher.Encrypt("same plaintext")
	require.NoError(t, err)

	// Random nonce per call: ciphertext equality can never be used for
	// deduplication.
	assert.NotEqual(t, first, second)
}

func TestCipher_TamperDetection(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	ct, err := cipher.Encrypt("sensitive value")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = cipher.Decrypt(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCiphertext)
}

func TestCipher_WrongKey(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	otherKey := testKey(t)
	otherKey[0] ^= 0xFF
	other, err := NewCipher(otherKey)
	require.NoError(t, err)

	ct, err := cipher.Encrypt("sensitive value")
	require.NoError(t, err)

	_, err = other.Decrypt(ct)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCiphertext)
}

func TestCipher_PlaintextInput(t *testing.T) {
	cipher, err := NewCipher(testKey(t))
	require.NoError(t, err)

	// A legacy plaintext value stored in an encrypted column fails hard
	// rather than coming back garbled.
	for _, input := range []string{"not ciphertext at all", "QQ=="} {
		_, err := cipher.Decrypt(input)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCiphertext, input)
	}
}

func TestNewCipher_RejectsBadKeyLength(t *testing.T) {
	_, err := NewCipher(make([]byte, 16))
	assert.Error(t, err)
}
