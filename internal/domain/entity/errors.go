package entity

import (
	"errors"
	"fmt"
)

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrUnknownTab         = errors.New("unknown detail tab")
	ErrDetailClosed       = errors.New("pool detail is closed")
	ErrRawDataUnavailable = errors.New("raw data is only available for encrypted pools")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrNotCiphertext      = errors.New("value is not a ciphertext")
	ErrReadOnlyClient     = errors.New("contract client has no signing key")
	ErrUnknownEvent       = errors.New("log does not match a known contract event")
)

// TransactionError is returned by every failed contract write. The underlying
// cause is not categorised.
type TransactionError struct {
	Method string
	Err    error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Method, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
