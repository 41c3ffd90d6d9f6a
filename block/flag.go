package block

import (
	"fmt"
	"strings"
)

// Flags is the 32-bit flag field of a block.
//
// It is a plain integer so that bits unknown to this package survive a
// parse/serialize round trip untouched. No combination of bits is invalid;
// flags only change how other fields are interpreted.
type Flags uint32

const (
	// FlagNotMainFlash marks a block that should be skipped when writing to main flash.
	FlagNotMainFlash Flags = 0x00000001
	// FlagFileContainer marks a block that carries part of a file; the aux field holds the file size.
	FlagFileContainer Flags = 0x00001000
	// FlagFamilyID marks the aux field as a board family identifier.
	FlagFamilyID Flags = 0x00002000
	// FlagChecksum marks the last 24 bytes of data as a checksum record.
	FlagChecksum Flags = 0x00004000
	// FlagExtensionTags marks the data after the payload as an extension tag list.
	FlagExtensionTags Flags = 0x00008000

	// KnownFlagsMask covers every flag defined above.
	KnownFlagsMask = FlagNotMainFlash | FlagFileContainer | FlagFamilyID | FlagChecksum | FlagExtensionTags
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagNotMainFlash, "NotMainFlash"},
	{FlagFileContainer, "FileContainer"},
	{FlagFamilyID, "FamilyId"},
	{FlagChecksum, "Checksum"},
	{FlagExtensionTags, "ExtensionTags"},
}

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Set sets every bit in mask.
func (f *Flags) Set(mask Flags) {
	*f |= mask
}

// Clear clears every bit in mask.
func (f *Flags) Clear(mask Flags) {
	*f &^= mask
}

// Union returns the bits set in either f or other.
func (f Flags) Union(other Flags) Flags {
	return f | other
}

// IsNotMainFlash reports whether the block must not be written to main flash.
func (f Flags) IsNotMainFlash() bool { return f.Has(FlagNotMainFlash) }

// IsFileContainer reports whether the block belongs to a file container,
// in which case the aux field holds the file size.
func (f Flags) IsFileContainer() bool { return f.Has(FlagFileContainer) }

// HasFamilyID reports whether the aux field holds a board family ID.
func (f Flags) HasFamilyID() bool { return f.Has(FlagFamilyID) }

// HasChecksum reports whether the last 24 data bytes hold a checksum record.
func (f Flags) HasChecksum() bool { return f.Has(FlagChecksum) }

// HasExtensionTags reports whether extension records follow the payload.
func (f Flags) HasExtensionTags() bool { return f.Has(FlagExtensionTags) }

// Unknown returns the bits that do not correspond to any known flag.
func (f Flags) Unknown() Flags {
	return f &^ KnownFlagsMask
}

// String returns the set flags joined by '|', with unknown bits in hex.
// An empty flag set is rendered as "0".
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}

	parts := make([]string, 0, len(flagNames)+1)
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if unknown := f.Unknown(); unknown != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(unknown)))
	}

	return strings.Join(parts, "|")
}
