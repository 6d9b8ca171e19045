package header

import (
	"encoding/binary"

	"keeptower/internal/encoding"
	vaulterrors "keeptower/internal/errors"
)

// ReadHeader parses a VaultFormatV2 preamble out of data, recovering the
// vault-header blob (optionally removing its FEC wrapping) and deserializing
// it through vaultHeader's codec. It returns the populated header plus the
// byte offset at which the encrypted record body begins.
func ReadHeader(data []byte, vaultHeader VaultHeaderCodec) (*V2FileHeader, int, error) {
	if len(data) < 16 {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
	}

	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != VaultMagic {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != VaultVersionV2 {
		return nil, 0, vaulterrors.New(vaulterrors.KindUnsupportedVersion, "read_header", nil)
	}
	pbkdf2Iterations := binary.LittleEndian.Uint32(data[8:12])
	headerSize := binary.LittleEndian.Uint32(data[12:16])

	if headerSize < 1 || headerSize > MaxHeaderSize {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
	}
	remaining := len(data) - preambleFixedSize
	if remaining < 0 || uint32(remaining) < headerSize {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
	}

	flags := data[16]
	h := int(headerSize) - 1
	if h+trailerSize > remaining {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
	}

	headerDataSection := data[preambleFixedSize : preambleFixedSize+h]

	var vaultHeaderBytes []byte
	var storedRedundancy uint8
	fecEnabled := flags&HeaderFlagFECEnabled != 0

	if !fecEnabled {
		vaultHeaderBytes = headerDataSection
	} else {
		if h < fecWrapperMinSize {
			return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", nil)
		}
		storedRedundancy = headerDataSection[0]
		originalSize := binary.BigEndian.Uint32(headerDataSection[1:5])
		encoded := headerDataSection[5:]

		// The stored redundancy byte is display metadata only: the fixed
		// RS(255,223) geometry means decoding needs just the codewords and
		// the original length, whatever percentage the writer recorded.
		codec, err := encoding.Default()
		if err != nil {
			return nil, 0, vaulterrors.New(vaulterrors.KindFECDecodingFailed, "read_header", err)
		}
		decoded, err := codec.Decode(encoded, originalSize)
		if err != nil {
			return nil, 0, vaulterrors.New(vaulterrors.KindFECDecodingFailed, "read_header", err)
		}
		vaultHeaderBytes = decoded
	}

	if err := vaultHeader.Unmarshal(vaultHeaderBytes); err != nil {
		return nil, 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "read_header", err)
	}

	trailer := data[preambleFixedSize+h:]
	fh := &V2FileHeader{
		Version:          version,
		PBKDF2Iterations: pbkdf2Iterations,
		FECEnabled:       fecEnabled,
		VaultHeader:      vaultHeader,
		VaultHeaderBytes: vaultHeaderBytes,
	}
	if fecEnabled {
		fh.FECRedundancyPct = storedRedundancy
	}
	copy(fh.DataSalt[:], trailer[0:dataSaltSize])
	copy(fh.DataIV[:], trailer[dataSaltSize:trailerSize])

	bodyOffset := preambleFixedSize + h + trailerSize
	return fh, bodyOffset, nil
}
