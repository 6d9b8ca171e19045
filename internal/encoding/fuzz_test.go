package encoding

import (
	"bytes"
	"testing"
)

// FuzzRSEncodeDecode checks that any payload survives an Encode/Decode
// roundtrip unchanged, across the full range of valid redundancy percentages.
func FuzzRSEncodeDecode(f *testing.F) {
	f.Add([]byte{}, 20)
	f.Add([]byte{0x00}, 5)
	f.Add([]byte{0xFF}, 50)
	f.Add(bytes.Repeat([]byte{0x42}, RSDataSize), 20)
	f.Add(bytes.Repeat([]byte{0x13}, RSDataSize+1), 35)
	f.Add(bytes.Repeat([]byte{0x99}, RSDataSize*3), 10)

	codec, err := NewCodec()
	if err != nil {
		f.Fatalf("NewCodec() failed: %v", err)
	}

	f.Fuzz(func(t *testing.T, data []byte, redundancy int) {
		if len(data) == 0 {
			return
		}
		if redundancy < MinRedundancyPercent || redundancy > MaxRedundancyPercent {
			return
		}

		enc, err := codec.Encode(data, redundancy)
		if err != nil {
			t.Fatalf("Encode failed on valid input: %v", err)
		}

		decoded, err := codec.Decode(enc.Data, enc.OriginalSize)
		if err != nil {
			t.Fatalf("Decode failed on uncorrupted encoding: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("roundtrip mismatch: got %d bytes, want %d bytes", len(decoded), len(data))
		}
	})
}

// FuzzRSDecodeNeverPanics feeds arbitrary bytes straight into Decode, which
// should only ever return an error for malformed input, never panic.
func FuzzRSDecodeNeverPanics(f *testing.F) {
	f.Add([]byte{}, uint32(0))
	f.Add(bytes.Repeat([]byte{0x01}, RSBlockSize), uint32(RSDataSize))
	f.Add(bytes.Repeat([]byte{0xFF}, RSBlockSize/2), uint32(10))
	f.Add(bytes.Repeat([]byte{0x00}, RSBlockSize*2+1), uint32(1))

	codec, err := NewCodec()
	if err != nil {
		f.Fatalf("NewCodec() failed: %v", err)
	}

	f.Fuzz(func(t *testing.T, data []byte, originalSize uint32) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Decode panicked: %v", r)
			}
		}()
		_, _ = codec.Decode(data, originalSize)
	})
}
