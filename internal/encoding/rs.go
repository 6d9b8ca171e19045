// Package encoding provides the Reed-Solomon forward error correction used
// to protect the vault header region of a VaultFormatV2 file.
//
// The codec is fixed at RS(255,223): 223 bytes of data protected by 32 parity
// bytes per codeword, over GF(2^8). The field arithmetic is that of the
// infectious library (field polynomial x^8+x^4+x^3+x^2+1), not the CCSDS
// primitive polynomial, so its codewords are not interchangeable with those
// of a CCSDS RS(255,223) codec. The
// user-facing "redundancy percentage" (5..50) is a metadata promise recorded
// alongside the encoded bytes; it never changes the physical block layout,
// which always appends exactly RSParitySize bytes per RSDataSize-byte block
// regardless of the requested percentage.
package encoding

import (
	"sync"

	"github.com/Picocrypt/infectious"

	vaulterrors "keeptower/internal/errors"
)

// Fixed RS(255,223) block geometry. Compatible readers and writers must use
// these exact sizes.
const (
	RSDataSize   = 223 // OPTIMAL_BLOCK_SIZE: data bytes per codeword
	RSParitySize = 32  // parity bytes appended per codeword
	RSBlockSize  = RSDataSize + RSParitySize

	MinRedundancyPercent = 5
	MaxRedundancyPercent = 50
)

// EncodedData is the result of encoding a payload with Codec.Encode. Data
// holds the RS(255,223) codewords concatenated in block order; the other
// fields are metadata describing how the payload was (notionally) protected.
type EncodedData struct {
	Data              []byte
	OriginalSize      uint32
	RedundancyPercent uint8
	BlockSize         int
	NumDataBlocks     int
	NumParityBlocks   int
}

// Codec wraps a single pre-built RS(255,223) FEC instance. A Codec holds no
// per-call mutable state and is safe for concurrent use once constructed;
// build it once at process startup and reuse it for the process lifetime.
type Codec struct {
	fec *infectious.FEC
}

// NewCodec initializes the RS(255,223) codec.
func NewCodec() (*Codec, error) {
	fec, err := infectious.NewFEC(RSDataSize, RSBlockSize)
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindEncodingFailed, "new_codec", err)
	}
	return &Codec{fec: fec}, nil
}

var (
	defaultCodec     *Codec
	defaultCodecOnce sync.Once
	defaultCodecErr  error
)

// Default returns the process-wide RS(255,223) codec, building it on first
// use. Every call after the first is a simple already-built lookup.
func Default() (*Codec, error) {
	defaultCodecOnce.Do(func() {
		defaultCodec, defaultCodecErr = NewCodec()
	})
	return defaultCodec, defaultCodecErr
}

// Encode pads data to a multiple of RSDataSize with zero bytes, RS-encodes
// each block, and returns the concatenated codewords plus metadata recording
// the original length and the caller's requested redundancy percentage.
func (c *Codec) Encode(data []byte, redundancyPercent int) (*EncodedData, error) {
	if len(data) == 0 {
		return nil, vaulterrors.New(vaulterrors.KindInvalidData, "rs_encode", nil)
	}
	if redundancyPercent < MinRedundancyPercent || redundancyPercent > MaxRedundancyPercent {
		return nil, vaulterrors.New(vaulterrors.KindInvalidRedundancy, "rs_encode", nil)
	}
	if len(data) > 1<<32-1 {
		return nil, vaulterrors.New(vaulterrors.KindBlockSizeTooLarge, "rs_encode", nil)
	}

	padded := padToBlock(data)
	numDataBlocks := len(padded) / RSDataSize
	numParityBlocks := (numDataBlocks*redundancyPercent + 99) / 100 // ceil

	out := make([]byte, numDataBlocks*RSBlockSize)
	for i := 0; i < numDataBlocks; i++ {
		block := padded[i*RSDataSize : (i+1)*RSDataSize]
		dst := out[i*RSBlockSize : (i+1)*RSBlockSize]
		if err := c.fec.Encode(block, func(s infectious.Share) {
			dst[s.Number] = s.Data[0]
		}); err != nil {
			return nil, vaulterrors.New(vaulterrors.KindEncodingFailed, "rs_encode", err)
		}
	}

	return &EncodedData{
		Data:              out,
		OriginalSize:      uint32(len(data)),
		RedundancyPercent: uint8(redundancyPercent),
		BlockSize:         RSBlockSize,
		NumDataBlocks:     numDataBlocks,
		NumParityBlocks:   numParityBlocks,
	}, nil
}

// Decode reverses Encode: it RS-decodes every RSBlockSize codeword in data,
// concatenates the recovered RSDataSize data blocks, and truncates the
// result to originalSize. Decoding is all-or-nothing: if any single block
// cannot be corrected, the whole call fails with KindDecodingFailed, matching
// the authenticated-encryption context this FEC layer feeds (a partially
// recovered header is not a usable header).
func (c *Codec) Decode(data []byte, originalSize uint32) ([]byte, error) {
	if len(data) == 0 || originalSize == 0 {
		return nil, vaulterrors.New(vaulterrors.KindInvalidData, "rs_decode", nil)
	}
	if len(data)%RSBlockSize != 0 {
		return nil, vaulterrors.New(vaulterrors.KindInvalidData, "rs_decode", nil)
	}

	numDataBlocks := len(data) / RSBlockSize
	recovered := make([]byte, 0, numDataBlocks*RSDataSize)

	shares := make([]infectious.Share, RSBlockSize)
	for i := 0; i < numDataBlocks; i++ {
		block := data[i*RSBlockSize : (i+1)*RSBlockSize]
		for j := 0; j < RSBlockSize; j++ {
			shares[j].Number = j
			if cap(shares[j].Data) == 0 {
				shares[j].Data = make([]byte, 1)
			}
			shares[j].Data[0] = block[j]
		}

		res, err := c.fec.Decode(nil, shares)
		if err != nil {
			return nil, vaulterrors.New(vaulterrors.KindDecodingFailed, "rs_decode", err)
		}
		recovered = append(recovered, res...)
	}

	if uint32(len(recovered)) < originalSize {
		return nil, vaulterrors.New(vaulterrors.KindDecodingFailed, "rs_decode", nil)
	}
	return recovered[:originalSize], nil
}

// padToBlock zero-pads data up to a multiple of RSDataSize bytes.
func padToBlock(data []byte) []byte {
	rem := len(data) % RSDataSize
	if rem == 0 {
		return data
	}
	padded := make([]byte, len(data)+(RSDataSize-rem))
	copy(padded, data)
	return padded
}

// CalculateEncodedSize returns the number of bytes Encode will produce for a
// payload of originalLen bytes, without performing the encoding. Useful for
// callers sizing buffers ahead of time.
func CalculateEncodedSize(originalLen int) int {
	numDataBlocks := (originalLen + RSDataSize - 1) / RSDataSize
	if originalLen == 0 {
		numDataBlocks = 0
	}
	return numDataBlocks * RSBlockSize
}
