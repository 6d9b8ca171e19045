// Package errors provides the unified error taxonomy surfaced by the vault
// core. Every operation that can fail returns (or wraps) a *VaultError whose
// Kind callers can branch on with Is, instead of string-matching messages.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a vault core failure. The set is closed:
// every failure path in encoding, header, and history returns one of these.
type Kind int

const (
	// Structural
	KindCorruptedFile Kind = iota
	KindUnsupportedVersion
	KindInvalidData

	// FEC (wraps the inner RS error kinds below)
	KindFECEncodingFailed
	KindFECDecodingFailed

	// RS codec internals, surfaced standalone by package encoding and
	// wrapped as FECEncodingFailed/FECDecodingFailed by package header.
	KindInvalidRedundancy
	KindEncodingFailed
	KindDecodingFailed
	KindBlockSizeTooLarge

	// Serialization (vault-header collaborator boundary)
	KindSerializationFailed
	KindDeserializationFailed

	// Crypto
	KindCryptoError
	KindKeyDerivationFailed

	// Policy (raised by the surrounding policy layer, not the core itself)
	KindWeakPassword
)

func (k Kind) String() string {
	switch k {
	case KindCorruptedFile:
		return "corrupted_file"
	case KindUnsupportedVersion:
		return "unsupported_version"
	case KindInvalidData:
		return "invalid_data"
	case KindFECEncodingFailed:
		return "fec_encoding_failed"
	case KindFECDecodingFailed:
		return "fec_decoding_failed"
	case KindInvalidRedundancy:
		return "invalid_redundancy"
	case KindEncodingFailed:
		return "encoding_failed"
	case KindDecodingFailed:
		return "decoding_failed"
	case KindBlockSizeTooLarge:
		return "block_size_too_large"
	case KindSerializationFailed:
		return "serialization_failed"
	case KindDeserializationFailed:
		return "deserialization_failed"
	case KindCryptoError:
		return "crypto_error"
	case KindKeyDerivationFailed:
		return "key_derivation_failed"
	case KindWeakPassword:
		return "weak_password"
	default:
		return "unknown"
	}
}

// VaultError is the single error type returned across package encoding,
// header, and history. Op names the failing operation ("read_header",
// "rs_decode", "hash_password", ...); Err is the optional wrapped cause.
type VaultError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *VaultError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *VaultError) Unwrap() error {
	return e.Err
}

// New creates a *VaultError of the given kind for operation op, wrapping err.
func New(kind Kind, op string, err error) *VaultError {
	return &VaultError{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is a *VaultError of the given kind.
func Is(err error, kind Kind) bool {
	var ve *VaultError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// As finds the first error in err's chain that matches target, delegating to
// the standard library. Exposed here so callers need only import this
// package for the common error-inspection helpers.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap attaches additional context to err without changing its Kind;
// returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
