// Package fhe holds the placeholder Encryptor. Ciphertexts are plain strings
// embedding the value and a millisecond timestamp; nothing here is secure.
package fhe

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"holo_vault_analyzer/internal/app/port"
	"holo_vault_analyzer/internal/domain/entity"
)

const (
	ciphertextPrefix = "encrypted_"
	proofPrefix      = "proof_"
)

var ciphertextPattern = regexp.MustCompile(`encrypted_(\d+)_`)

// MockEncryptor implements port.Encryptor by string templating.
type MockEncryptor struct {
	now func() time.Time
}

var _ port.Encryptor = (*MockEncryptor)(nil)

// NewMockEncryptor returns an encryptor stamping values with the wall clock.
func NewMockEncryptor() *MockEncryptor {
	return &MockEncryptor{now: time.Now}
}

// EncryptValue returns "encrypted_<value>_<unix millis>".
func (e *MockEncryptor) EncryptValue(ctx context.Context, value uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d_%d", ciphertextPrefix, value, e.now().UnixMilli()), nil
}

// DecryptValue extracts the plaintext embedded by EncryptValue.
func (e *MockEncryptor) DecryptValue(ctx context.Context, ciphertext string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m := ciphertextPattern.FindStringSubmatch(ciphertext)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", entity.ErrNotCiphertext, ciphertext)
	}
	v, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", entity.ErrNotCiphertext, err)
	}
	return v, nil
}

// GenerateProof returns "proof_<value>_<unix millis>".
func (e *MockEncryptor) GenerateProof(ctx context.Context, value uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d_%d", proofPrefix, value, e.now().UnixMilli()), nil
}
