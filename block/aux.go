package block

import (
	"fmt"

	"github.com/arloliu/uftwo/format"
)

// AuxKind tells which meaning the overloaded family-or-file-size field has.
type AuxKind uint8

const (
	AuxUnused AuxKind = iota
	AuxFamilyID
	AuxFileSize
)

func (k AuxKind) String() string {
	switch k {
	case AuxUnused:
		return "Unused"
	case AuxFamilyID:
		return "FamilyID"
	case AuxFileSize:
		return "FileSize"
	default:
		return "Unknown"
	}
}

// Aux is the in-memory form of the block's family-or-file-size field.
//
// On the wire the field is a single uint32 whose meaning depends on
// FlagFamilyID; DecodeAux and EncodeAux convert between the two forms.
type Aux struct {
	Kind  AuxKind
	Value uint32
}

// UnusedAux returns an aux value that serializes as zero.
func UnusedAux() Aux {
	return Aux{Kind: AuxUnused}
}

// FamilyAux returns an aux value carrying a board family identifier.
func FamilyAux(id format.FamilyID) Aux {
	return Aux{Kind: AuxFamilyID, Value: uint32(id)}
}

// FileSizeAux returns an aux value carrying a file size.
func FileSizeAux(size uint32) Aux {
	return Aux{Kind: AuxFileSize, Value: size}
}

// FamilyID returns the family identifier if a is a family aux value.
func (a Aux) FamilyID() (format.FamilyID, bool) {
	if a.Kind != AuxFamilyID {
		return 0, false
	}

	return format.FamilyID(a.Value), true
}

// FileSize returns the file size if a is a file size aux value.
func (a Aux) FileSize() (uint32, bool) {
	if a.Kind != AuxFileSize {
		return 0, false
	}

	return a.Value, true
}

func (a Aux) String() string {
	switch a.Kind {
	case AuxFamilyID:
		return "family " + format.FamilyID(a.Value).String()
	case AuxFileSize:
		return fmt.Sprintf("file size %d", a.Value)
	default:
		return "unused"
	}
}

// DecodeAux interprets the raw family-or-file-size field under flags.
//
// FlagFamilyID takes precedence. Without it a non-zero value, or any value in a
// file container block, is a file size; otherwise the field is unused.
func DecodeAux(flags Flags, raw uint32) Aux {
	switch {
	case flags.HasFamilyID():
		return FamilyAux(format.FamilyID(raw))
	case flags.IsFileContainer() || raw != 0:
		return FileSizeAux(raw)
	default:
		return UnusedAux()
	}
}

// EncodeAux returns flags adjusted for a and the raw field value.
//
// Only FlagFamilyID is touched: it is set for family values and cleared
// otherwise. FlagFileContainer stays under caller control.
func EncodeAux(flags Flags, a Aux) (Flags, uint32) {
	switch a.Kind {
	case AuxFamilyID:
		flags.Set(FlagFamilyID)
		return flags, a.Value
	case AuxFileSize:
		flags.Clear(FlagFamilyID)
		return flags, a.Value
	default:
		flags.Clear(FlagFamilyID)
		return flags, 0
	}
}
