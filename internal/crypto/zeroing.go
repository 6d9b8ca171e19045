package crypto

import "crypto/subtle"

// SecureZero overwrites b with zeros so hash output, derived keys, and other
// sensitive buffers do not linger in memory after use.
//
// Go's garbage collector and compiler optimizations mean complete erasure
// cannot be guaranteed; this narrows the window during which the material is
// recoverable from RAM rather than eliminating it.
//
// subtle.ConstantTimeCopy is used so the compiler cannot prove the write is
// dead and elide it.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros several related buffers in one call.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// KeyMaterial holds a sensitive byte buffer that is zeroed on Close. Use it
// for transient copies of derived hashes or key bytes whose lifetime is a
// single operation.
//
//	km := NewKeyMaterial(derived)
//	defer km.Close()
type KeyMaterial struct {
	data   []byte
	closed bool
}

// NewKeyMaterial copies data into a new KeyMaterial so the wrapper owns the
// buffer it will later zero.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the wrapped buffer, or nil after Close.
func (km *KeyMaterial) Bytes() []byte {
	if km.closed {
		return nil
	}
	return km.data
}

// Len returns the buffer length, or 0 after Close.
func (km *KeyMaterial) Len() int {
	if km.closed || km.data == nil {
		return 0
	}
	return len(km.data)
}

// Close zeros the buffer and marks the wrapper closed. Idempotent.
func (km *KeyMaterial) Close() {
	if km.closed {
		return
	}
	SecureZero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed reports whether Close has been called.
func (km *KeyMaterial) IsClosed() bool {
	return km.closed
}
