package encoding

import (
	"bytes"
	"testing"

	vaulterrors "keeptower/internal/errors"
)

func TestNewCodec(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}
	if codec == nil || codec.fec == nil {
		t.Fatal("NewCodec() returned a codec with no underlying FEC")
	}
}

func TestEncodeRejectsEmptyInput(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}
	if _, err := codec.Encode(nil, 20); !vaulterrors.Is(err, vaulterrors.KindInvalidData) {
		t.Errorf("Encode(nil) = %v; want KindInvalidData", err)
	}
}

func TestEncodeRejectsInvalidRedundancy(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}
	data := []byte("hello")
	for _, r := range []int{0, 4, 51, 100} {
		if _, err := codec.Encode(data, r); !vaulterrors.Is(err, vaulterrors.KindInvalidRedundancy) {
			t.Errorf("Encode(data, %d) = %v; want KindInvalidRedundancy", r, err)
		}
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"single byte", []byte{0x42}},
		{"smaller than a block", bytes.Repeat([]byte{0xAB}, 100)},
		{"exactly one block", bytes.Repeat([]byte{0x07}, RSDataSize)},
		{"spans two blocks", bytes.Repeat([]byte{0x13}, RSDataSize+50)},
		{"several blocks", bytes.Repeat([]byte{0x99}, RSDataSize*4+17)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := codec.Encode(tc.data, 20)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if enc.OriginalSize != uint32(len(tc.data)) {
				t.Errorf("OriginalSize = %d; want %d", enc.OriginalSize, len(tc.data))
			}
			wantBlocks := (len(tc.data) + RSDataSize - 1) / RSDataSize
			if enc.NumDataBlocks != wantBlocks {
				t.Errorf("NumDataBlocks = %d; want %d", enc.NumDataBlocks, wantBlocks)
			}
			if len(enc.Data) != wantBlocks*RSBlockSize {
				t.Errorf("len(Data) = %d; want %d", len(enc.Data), wantBlocks*RSBlockSize)
			}

			decoded, err := codec.Decode(enc.Data, enc.OriginalSize)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(decoded, tc.data) {
				t.Error("Decode did not recover the original payload")
			}
		})
	}
}

func TestDecodeCorrectsWithinBlockCapacity(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}

	data := bytes.Repeat([]byte{0x5A}, RSDataSize)
	enc, err := codec.Encode(data, 20)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	corrupted := make([]byte, len(enc.Data))
	copy(corrupted, enc.Data)
	// RS(255,223) corrects up to 16 byte errors per codeword.
	for i := 0; i < 16; i++ {
		corrupted[i] ^= 0xFF
	}

	decoded, err := codec.Decode(corrupted, enc.OriginalSize)
	if err != nil {
		t.Fatalf("Decode with 16 corrupted bytes failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Decode did not recover original data despite correctable corruption")
	}
}

func TestDecodeFailsBeyondBlockCapacity(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}

	data := bytes.Repeat([]byte{0x5A}, RSDataSize)
	enc, err := codec.Encode(data, 20)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	corrupted := make([]byte, len(enc.Data))
	copy(corrupted, enc.Data)
	for i := 0; i < 17; i++ {
		corrupted[i] ^= 0xFF
	}

	if _, err := codec.Decode(corrupted, enc.OriginalSize); !vaulterrors.Is(err, vaulterrors.KindDecodingFailed) {
		t.Errorf("Decode with 17 corrupted bytes = %v; want KindDecodingFailed", err)
	}
}

func TestDecodeRejectsEmptyOrZeroSize(t *testing.T) {
	codec, err := NewCodec()
	if err != nil {
		t.Fatalf("NewCodec() failed: %v", err)
	}

	if _, err := codec.Decode(nil, 10); !vaulterrors.Is(err, vaulterrors.KindInvalidData) {
		t.Errorf("Decode(nil, 10) = %v; want KindInvalidData", err)
	}

	data := bytes.Repeat([]byte{0x01}, RSBlockSize)
	if _, err := codec.Decode(data, 0); !vaulterrors.Is(err, vaulterrors.KindInvalidData) {
		t.Errorf("Decode(data, 0) = %v; want KindInvalidData", err)
	}
}

func TestCalculateEncodedSize(t *testing.T) {
	tests := []struct {
		originalLen int
		want        int
	}{
		{0, 0},
		{1, RSBlockSize},
		{RSDataSize, RSBlockSize},
		{RSDataSize + 1, RSBlockSize * 2},
	}
	for _, tc := range tests {
		if got := CalculateEncodedSize(tc.originalLen); got != tc.want {
			t.Errorf("CalculateEncodedSize(%d) = %d; want %d", tc.originalLen, got, tc.want)
		}
	}
}

func TestDefaultCodecSingleton(t *testing.T) {
	c1, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	c2, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if c1 != c2 {
		t.Error("Default() should return the same codec instance across calls")
	}
}
