// Package history implements password-history hashing and constant-time
// reuse detection: PBKDF2-HMAC-SHA512 hashing of historical passwords, a
// full-traversal constant-time comparison against that history, and the FIFO
// retention trim applied when a new entry is recorded.
package history

import (
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	vaultcrypto "keeptower/internal/crypto"
	vaulterrors "keeptower/internal/errors"
	"keeptower/internal/log"
)

const (
	// Iterations is the default PBKDF2-HMAC-SHA512 round count. Lower it
	// only via SetTestIterations, and only from test harnesses.
	Iterations = 600_000

	saltLen = 32
	hashLen = 48
)

var iterations = Iterations

// SetTestIterations overrides the process-wide PBKDF2 round count used by
// HashPassword and IsPasswordReused. It exists solely so tests run in a
// reasonable amount of time; it is process-wide mutable state and MUST NOT
// be changed while hashing operations are in flight. Call with 0 to restore
// the default.
func SetTestIterations(n int) {
	if n <= 0 {
		iterations = Iterations
		return
	}
	iterations = n
}

// Entry is a single hashed password-history record.
type Entry struct {
	Salt      [saltLen]byte
	Hash      [hashLen]byte
	Timestamp time.Time
}

// HashPassword derives a new history Entry for pw: a fresh random salt and
// the PBKDF2-HMAC-SHA512 hash of pw under that salt, stamped with the
// current time.
func HashPassword(pw string) (*Entry, error) {
	if pw == "" {
		return nil, vaulterrors.New(vaulterrors.KindInvalidData, "hash_password", nil)
	}

	entry := &Entry{Timestamp: time.Now()}
	if err := vaultcrypto.FillRandom(entry.Salt[:]); err != nil {
		return nil, vaulterrors.New(vaulterrors.KindCryptoError, "hash_password", err)
	}

	hash, err := derive(pw, entry.Salt[:])
	if err != nil {
		return nil, err
	}
	defer vaultcrypto.SecureZero(hash)
	copy(entry.Hash[:], hash)

	return entry, nil
}

// IsPasswordReused reports whether pw matches any entry in history. It
// iterates every entry without early exit and compares in constant time, so
// that a caller observing only timing cannot learn how far into the history
// a match occurred (or whether one occurred at all, beyond the final
// true/false result).
func IsPasswordReused(pw string, history []Entry) bool {
	if pw == "" || len(history) == 0 {
		return false
	}

	found := 0
	for i := range history {
		candidate, err := derive(pw, history[i].Salt[:])
		if err != nil {
			// Skip the entry but keep scanning, so one bad entry cannot
			// abort the full traversal. The event is diagnostic only.
			log.ErrorE("password history: derivation failed, entry skipped", err, log.Int("entry", i))
			continue
		}
		match := subtle.ConstantTimeCompare(candidate, history[i].Hash[:])
		vaultcrypto.SecureZero(candidate)
		found |= match
	}
	return found == 1
}

// derive runs PBKDF2-HMAC-SHA512 over pw with the configured iteration
// count. PBKDF2 with these parameters cannot itself fail; the recover guards
// against a future change to the KDF call, not an expected runtime path.
func derive(pw string, salt []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = vaulterrors.New(vaulterrors.KindKeyDerivationFailed, "pbkdf2_derive", fmt.Errorf("%v", r))
		}
	}()
	return pbkdf2.Key([]byte(pw), salt, iterations, hashLen, sha512.New), nil
}

// AddToHistory appends entry to history and trims to maxDepth (FIFO, oldest
// first). A maxDepth of 0 disables history entirely: the returned slice is
// empty.
func AddToHistory(history []Entry, entry Entry, maxDepth int) []Entry {
	if maxDepth == 0 {
		return nil
	}
	history = append(history, entry)
	return TrimHistory(history, maxDepth)
}

// TrimHistory removes the oldest entries until len(history) <= maxDepth. A
// maxDepth of 0 clears history entirely.
func TrimHistory(history []Entry, maxDepth int) []Entry {
	if maxDepth == 0 {
		return nil
	}
	if len(history) <= maxDepth {
		return history
	}
	return history[len(history)-maxDepth:]
}
