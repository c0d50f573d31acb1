// Package protect applies field-level encryption to the sensitive attributes
// of persisted records. Every create/update path encrypts through this layer
// and every read path decrypts through it; handlers never call the cipher
// directly, so no write path can leave a sensitive field plaintext.
package protect

import (
	"fittrack/internal/crypto"
)

// Protected is implemented by models carrying sensitive free-text fields.
// SensitiveFields returns pointers into the record; entries may be nil for
// absent optional fields.
type Protected interface {
	SensitiveFields() []*string
}

// FieldProtector encrypts and decrypts the sensitive fields of a record in
// place.
type FieldProtector struct {
	cipher *crypto.Cipher
}

// NewFieldProtector creates a protector backed by the given cipher.
func NewFieldProtector(cipher *crypto.Cipher) *FieldProtector {
	return &FieldProtector{cipher: cipher}
}

// Protect replaces each present, non-empty sensitive field value with its
// ciphertext. Nil and empty fields pass through unchanged, so an absent
// value is stored as absent, never as ciphertext of "".
func (p *FieldProtector) Protect(rec Protected) error {
	for _, field := range rec.SensitiveFields() {
		if err := p.EncryptPtr(field); err != nil {
			return err
		}
	}
	return nil
}

// Reveal replaces each present, non-empty ciphertext field with its
// plaintext.
func (p *FieldProtector) Reveal(rec Protected) error {
	for _, field := range rec.SensitiveFields() {
		if field == nil || *field == "" {
			continue
		}
		plaintext, err := p.cipher.Decrypt(*field)
		if err != nil {
			return err
		}
		*field = plaintext
	}
	return nil
}

// EncryptPtr encrypts a single field in place. Used by partial-update paths
// so that only fields supplied by the client are transformed.
func (p *FieldProtector) EncryptPtr(field *string) error {
	if field == nil || *field == "" {
		return nil
	}
	ciphertext, err := p.cipher.Encrypt(*field)
	if err != nil {
		return err
	}
	*field = ciphertext
	return nil
}

// EncryptValue encrypts a single value, for callers assembling column update
// maps.
func (p *FieldProtector) EncryptValue(value string) (string, error) {
	return p.cipher.Encrypt(value)
}
