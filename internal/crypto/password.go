package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Hasher provides one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher implements Hasher using bcrypt with per-password salts.
type BcryptHasher struct{}

// Ensure BcryptHasher implements Hasher
var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a bcrypt-backed hasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash returns a salted one-way hash of the password. The plaintext is never
// stored or logged.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether password matches hash. bcrypt's comparison runs in
// time independent of where a mismatch occurs.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
