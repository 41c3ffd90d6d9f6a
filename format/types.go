// Package format defines the open enumerations used by UF2 blocks: extension
// tags and board family identifiers, plus the compression types accepted for
// input artifacts by the converter.
package format

import "fmt"

type (
	// ExtensionTag identifies the type of an extension record. Only the low
	// 24 bits are stored on the wire; values outside the known set are valid.
	ExtensionTag uint32
	// FamilyID selects the board family a block's payload is destined for.
	FamilyID        uint32
	CompressionType uint8
)

const (
	TagSemverString      ExtensionTag = 0x9fc7bc // TagSemverString is a UTF-8 semantic versioning string.
	TagDescriptionString ExtensionTag = 0x650d9d // TagDescriptionString is a UTF-8 device description.
	TagTargetPageSize    ExtensionTag = 0x0be9f7 // TagTargetPageSize is the page size of the target device.
	TagSha2Checksum      ExtensionTag = 0xb46db0 // TagSha2Checksum is a SHA-2 checksum of the firmware.
	TagDeviceTypeID      ExtensionTag = 0xc8a729 // TagDeviceTypeID is a device type identifier.

	// MaxExtensionTag is the largest tag value that fits in the 24-bit tag field.
	MaxExtensionTag ExtensionTag = 0xffffff
)

const (
	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents framed Snappy compression.
)

// IsKnown reports whether t is one of the tags defined by the UF2 specification.
func (t ExtensionTag) IsKnown() bool {
	switch t {
	case TagSemverString, TagDescriptionString, TagTargetPageSize, TagSha2Checksum, TagDeviceTypeID:
		return true
	default:
		return false
	}
}

func (t ExtensionTag) String() string {
	switch t {
	case TagSemverString:
		return "SemverString"
	case TagDescriptionString:
		return "DescriptionString"
	case TagTargetPageSize:
		return "TargetPageSize"
	case TagSha2Checksum:
		return "Sha2Checksum"
	case TagDeviceTypeID:
		return "DeviceTypeId"
	default:
		return fmt.Sprintf("Unknown(0x%06x)", uint32(t))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}
