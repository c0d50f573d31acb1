package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	apperrors "fittrack/internal/errors"
)

// Cipher provides authenticated encryption over UTF-8 text using AES-256-GCM.
// Encrypt output is base64(nonce || ciphertext). Encryption is
// non-deterministic: the same plaintext yields different ciphertext on every
// call, so callers must not compare ciphertexts for equality.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be exactly %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext with a random nonce. Empty input passes through
// unchanged so optional fields stored as "" never become ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any input that was not produced by Encrypt under
// the same key, including corrupted data or plaintext mistakenly stored in an
// encrypted column, fails with errors.ErrInvalidCiphertext.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperrors.ErrInvalidCiphertext
	}
	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", apperrors.ErrInvalidCiphertext
	}
	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", apperrors.ErrInvalidCiphertext
	}
	return string(plaintext), nil
}
