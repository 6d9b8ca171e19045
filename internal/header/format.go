// Package header implements VaultFormatV2: the versioned binary file header
// that wraps a caller-supplied (and opaque) vault-header blob, optionally
// protecting it with the RS(255,223) FEC from package encoding, and carries
// the data salt and IV a collaborator uses to decrypt the record body that
// follows in the file.
//
// The package never inspects the vault-header bytes themselves; it only
// frames them. Serialization of those bytes is delegated to a VaultHeaderCodec
// supplied by the caller.
package header

import (
	"encoding/binary"

	vaulterrors "keeptower/internal/errors"
)

// VaultMagic identifies a KeepTower vault file. On disk (little-endian) its
// four bytes read "VWTK".
const VaultMagic uint32 = 0x4B545756

// VaultVersionV2 is the only version this package can read the body of.
// Version 1 is detectable (see DetectVersion) but routed to a V1 collaborator.
const VaultVersionV2 uint32 = 2

// MaxHeaderSize bounds header_size (the FEC/vault-header payload region) at
// 1 MiB. Values larger than this are treated as corruption on read,
// regardless of how large the file actually is.
const MaxHeaderSize uint32 = 1 << 20

// HeaderFlagFECEnabled marks bit 0 of header_flags: the header payload is
// RS(255,223)-wrapped rather than stored verbatim.
const HeaderFlagFECEnabled uint8 = 0x01

// MinHeaderFECRedundancy is the floor applied to the user's requested
// redundancy percentage when computing the *effective* encoding redundancy.
// The stored redundancy byte always preserves the user's raw preference;
// only the RS encode call in WriteHeader uses max(MinHeaderFECRedundancy,
// stored). ReadHeader does not recompute it: Codec.Decode takes no
// redundancy argument, since the RS(255,223) geometry is fixed.
const MinHeaderFECRedundancy = 20

// fixed preamble byte offsets/sizes, per the VaultFormatV2 layout:
//
//	offset  size  field
//	0       4     magic
//	4       4     version
//	8       4     pbkdf2_iterations
//	12      4     header_size
//	16      1     header_flags
//	17      H     header_data_section (H = header_size - 1)
//	17+H    32    data_salt
//	49+H    12    data_iv
const (
	preambleFixedSize = 17 // magic + version + pbkdf2_iterations + header_size + header_flags
	dataSaltSize      = 32
	dataIVSize        = 12
	trailerSize       = dataSaltSize + dataIVSize // 44
)

// fecWrapperMinSize is the minimum size of a FEC-wrapped header_data_section:
// 1 byte stored_redundancy + 4 bytes original_size (big-endian).
const fecWrapperMinSize = 5

// VaultHeaderCodec is the collaborator boundary for the opaque vault-header
// blob: the security policy and key slot table that this package neither
// interprets nor validates beyond round-tripping its bytes.
type VaultHeaderCodec interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// V2FileHeader is the parsed, in-memory representation of a VaultFormatV2
// preamble plus its trailing salt and IV. VaultHeader is the recovered
// collaborator blob, already deserialized through the caller's codec on read,
// or supplied by the caller (pre-marshal) on write.
type V2FileHeader struct {
	Version          uint32
	PBKDF2Iterations uint32
	FECEnabled       bool
	FECRedundancyPct uint8 // stored (raw) redundancy; 0 when FEC disabled
	DataSalt         [dataSaltSize]byte
	DataIV           [dataIVSize]byte
	VaultHeader      VaultHeaderCodec
	VaultHeaderBytes []byte // raw bytes recovered on read, or to be written
}

// DetectVersion reports the version field of a VaultFormatV2-family file
// without fully parsing it. It accepts both version 1 and version 2; routing
// a version-1 file to a V1 collaborator is the caller's responsibility, since
// no V1 reader exists in this repository.
func DetectVersion(data []byte) (uint32, error) {
	if len(data) < 8 {
		return 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "detect_version", nil)
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != VaultMagic {
		return 0, vaulterrors.New(vaulterrors.KindCorruptedFile, "detect_version", nil)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	switch version {
	case 1, VaultVersionV2:
		return version, nil
	default:
		return 0, vaulterrors.New(vaulterrors.KindUnsupportedVersion, "detect_version", nil)
	}
}

// IsValidV2Vault reports whether data looks like a well-formed VaultFormatV2
// file: readable preamble, correct magic, version 2.
func IsValidV2Vault(data []byte) bool {
	version, err := DetectVersion(data)
	return err == nil && version == VaultVersionV2
}
