// Package crypto provides cryptographic primitives shared by the vault core:
// a hardened random-fill routine for salt buffers and constant-time memory
// zeroing. Password derivation itself lives in internal/history, which is
// the only caller.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// FillRandom fills b from the platform CSPRNG. The salt buffers this core
// fills are 32 bytes, so an all-zero read is a broken generator, not chance;
// it is rejected rather than handed to the KDF as a salt.
func FillRandom(b []byte) error {
	if len(b) == 0 {
		return errors.New("crypto: refusing to fill an empty buffer")
	}
	if _, err := rand.Read(b); err != nil {
		return fmt.Errorf("crypto: drbg read failed: %w", err)
	}

	var acc byte
	for _, v := range b {
		acc |= v
	}
	if acc == 0 {
		return errors.New("crypto: drbg produced all-zero output")
	}
	return nil
}
