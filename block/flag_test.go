package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlags_Values(t *testing.T) {
	require.Equal(t, Flags(0x1), FlagNotMainFlash)
	require.Equal(t, Flags(0x1000), FlagFileContainer)
	require.Equal(t, Flags(0x2000), FlagFamilyID)
	require.Equal(t, Flags(0x4000), FlagChecksum)
	require.Equal(t, Flags(0x8000), FlagExtensionTags)
}

func TestFlags_Default(t *testing.T) {
	var f Flags

	require.False(t, f.IsNotMainFlash())
	require.False(t, f.IsFileContainer())
	require.False(t, f.HasFamilyID())
	require.False(t, f.HasChecksum())
	require.False(t, f.HasExtensionTags())
	require.Equal(t, Flags(0), f.Unknown())
}

func TestFlags_SetClear(t *testing.T) {
	var f Flags

	f.Set(FlagChecksum)
	require.True(t, f.HasChecksum())
	require.False(t, f.HasExtensionTags())

	f.Set(FlagExtensionTags | FlagFamilyID)
	require.True(t, f.HasExtensionTags())
	require.True(t, f.HasFamilyID())
	require.True(t, f.Has(FlagChecksum|FlagFamilyID))
	require.False(t, f.Has(FlagChecksum|FlagNotMainFlash))

	f.Clear(FlagChecksum)
	require.False(t, f.HasChecksum())
	require.True(t, f.HasExtensionTags())
}

func TestFlags_Union(t *testing.T) {
	f := FlagNotMainFlash.Union(FlagFileContainer)

	require.True(t, f.IsNotMainFlash())
	require.True(t, f.IsFileContainer())
	require.Equal(t, FlagNotMainFlash|FlagFileContainer, f)
}

func TestFlags_UnknownBitsPreserved(t *testing.T) {
	f := Flags(0xFFFF0000) | FlagChecksum

	require.True(t, f.HasChecksum())
	require.Equal(t, Flags(0xFFFF0000), f.Unknown())

	f.Clear(FlagChecksum)
	require.Equal(t, Flags(0xFFFF0000), f)
}

func TestFlags_String(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, "0"},
		{FlagFamilyID, "FamilyId"},
		{FlagFamilyID | FlagChecksum, "FamilyId|Checksum"},
		{KnownFlagsMask, "NotMainFlash|FileContainer|FamilyId|Checksum|ExtensionTags"},
		{FlagNotMainFlash | Flags(0x10), "NotMainFlash|0x10"},
		{Flags(0x80000000), "0x80000000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.flags.String())
		})
	}
}
