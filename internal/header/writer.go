package header

import (
	"encoding/binary"

	"keeptower/internal/encoding"
	vaulterrors "keeptower/internal/errors"
)

// WriteParams collects the caller-supplied values WriteHeader needs beyond
// the vault-header blob itself.
type WriteParams struct {
	PBKDF2Iterations uint32
	EnableFEC        bool
	UserRedundancy   int // 0..50, stored as given; encoded at no less than MinHeaderFECRedundancy; ignored when EnableFEC is false
	DataSalt         [dataSaltSize]byte
	DataIV           [dataIVSize]byte
}

// WriteHeader serializes vaultHeader through its codec, optionally wraps the
// result in RS(255,223) FEC, and emits the full VaultFormatV2 preamble plus
// trailing data salt and IV. The returned bytes are the exact prefix of the
// on-disk file; the caller appends the encrypted body after them.
func WriteHeader(vaultHeader VaultHeaderCodec, params WriteParams) ([]byte, error) {
	v, err := vaultHeader.Marshal()
	if err != nil {
		return nil, vaulterrors.New(vaulterrors.KindSerializationFailed, "write_header", err)
	}
	if len(v) == 0 {
		return nil, vaulterrors.New(vaulterrors.KindSerializationFailed, "write_header", nil)
	}

	var headerData []byte
	var flags uint8

	if !params.EnableFEC {
		headerData = v
	} else {
		eff := params.UserRedundancy
		if eff < MinHeaderFECRedundancy {
			eff = MinHeaderFECRedundancy
		}

		codec, err := encoding.Default()
		if err != nil {
			return nil, vaulterrors.New(vaulterrors.KindFECEncodingFailed, "write_header", err)
		}
		enc, err := codec.Encode(v, eff)
		if err != nil {
			return nil, vaulterrors.New(vaulterrors.KindFECEncodingFailed, "write_header", err)
		}

		headerData = make([]byte, fecWrapperMinSize+len(enc.Data))
		headerData[0] = uint8(params.UserRedundancy)
		binary.BigEndian.PutUint32(headerData[1:5], uint32(len(v)))
		copy(headerData[5:], enc.Data)

		flags |= HeaderFlagFECEnabled
	}

	headerSize := uint32(1 + len(headerData))
	if headerSize > MaxHeaderSize {
		return nil, vaulterrors.New(vaulterrors.KindBlockSizeTooLarge, "write_header", nil)
	}

	out := make([]byte, preambleFixedSize+len(headerData)+trailerSize)
	binary.LittleEndian.PutUint32(out[0:4], VaultMagic)
	binary.LittleEndian.PutUint32(out[4:8], VaultVersionV2)
	binary.LittleEndian.PutUint32(out[8:12], params.PBKDF2Iterations)
	binary.LittleEndian.PutUint32(out[12:16], headerSize)
	out[16] = flags
	copy(out[17:17+len(headerData)], headerData)

	trailer := out[17+len(headerData):]
	copy(trailer[0:dataSaltSize], params.DataSalt[:])
	copy(trailer[dataSaltSize:trailerSize], params.DataIV[:])

	return out, nil
}
