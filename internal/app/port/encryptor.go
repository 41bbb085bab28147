package port

import "context"

// Encryptor is the FHE capability used by the dashboard. The bundled
// implementation is a placeholder without any cryptographic property.
type Encryptor interface {
	EncryptValue(ctx context.Context, value uint64) (string, error)
	DecryptValue(ctx context.Context, ciphertext string) (uint64, error)
	GenerateProof(ctx context.Context, value uint64) (string, error)
}
