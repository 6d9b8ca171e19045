// Package headertest provides a deterministic VaultHeaderCodec stub for
// exercising package header without a real collaborator serializer.
//
// The wire shape is a flat, length-prefixed field list: a big-endian u32
// count followed by that many length-prefixed byte fields. Production
// callers supply their own real VaultHeaderCodec implementation.
package headertest

import (
	"encoding/binary"
	"errors"
)

// StubVaultHeader is a minimal header.VaultHeaderCodec: an ordered list of
// opaque byte fields, round-tripped without interpretation.
type StubVaultHeader struct {
	Fields [][]byte
}

// Marshal encodes Fields as [count:u32 BE][for each: len:u32 BE][bytes].
func (s *StubVaultHeader) Marshal() ([]byte, error) {
	size := 4
	for _, f := range s.Fields {
		size += 4 + len(f)
	}
	out := make([]byte, size)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(s.Fields)))
	off := 4
	for _, f := range s.Fields {
		binary.BigEndian.PutUint32(out[off:off+4], uint32(len(f)))
		off += 4
		copy(out[off:off+len(f)], f)
		off += len(f)
	}
	return out, nil
}

// Unmarshal decodes the wire shape Marshal produces, replacing Fields.
func (s *StubVaultHeader) Unmarshal(data []byte) error {
	if len(data) < 4 {
		return errors.New("headertest: truncated field count")
	}
	count := binary.BigEndian.Uint32(data[0:4])
	off := 4
	fields := make([][]byte, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+4 > len(data) {
			return errors.New("headertest: truncated field length")
		}
		n := binary.BigEndian.Uint32(data[off : off+4])
		off += 4
		if off+int(n) > len(data) {
			return errors.New("headertest: truncated field body")
		}
		field := make([]byte, n)
		copy(field, data[off:off+int(n)])
		fields = append(fields, field)
		off += int(n)
	}
	s.Fields = fields
	return nil
}
