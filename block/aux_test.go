package block

import (
	"testing"

	"github.com/arloliu/uftwo/format"
	"github.com/stretchr/testify/require"
)

func TestDecodeAux(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		raw   uint32
		want  Aux
	}{
		{"zero without flags", 0, 0, UnusedAux()},
		{"family flag", FlagFamilyID, 0xe48bff56, FamilyAux(format.FamilyRP2040)},
		{"family flag with zero id", FlagFamilyID, 0, FamilyAux(0)},
		{"non-zero without flags is file size", 0, 1234, FileSizeAux(1234)},
		{"file container with zero size", FlagFileContainer, 0, FileSizeAux(0)},
		{"family wins over file container", FlagFamilyID | FlagFileContainer, 7, FamilyAux(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeAux(tt.flags, tt.raw))
		})
	}
}

func TestEncodeAux(t *testing.T) {
	t.Run("family sets flag", func(t *testing.T) {
		flags, raw := EncodeAux(FlagChecksum, FamilyAux(format.FamilySAMD21))
		require.Equal(t, FlagChecksum|FlagFamilyID, flags)
		require.Equal(t, uint32(format.FamilySAMD21), raw)
	})

	t.Run("file size clears family flag only", func(t *testing.T) {
		flags, raw := EncodeAux(FlagFamilyID|FlagFileContainer, FileSizeAux(99))
		require.Equal(t, FlagFileContainer, flags)
		require.Equal(t, uint32(99), raw)
	})

	t.Run("unused", func(t *testing.T) {
		flags, raw := EncodeAux(FlagFamilyID, UnusedAux())
		require.Equal(t, Flags(0), flags)
		require.Equal(t, uint32(0), raw)
	})

	t.Run("round trip", func(t *testing.T) {
		for _, a := range []Aux{UnusedAux(), FamilyAux(format.FamilyESP32S3), FileSizeAux(1 << 20)} {
			flags, raw := EncodeAux(0, a)
			require.Equal(t, a, DecodeAux(flags, raw))
		}
	})
}

func TestAux_Accessors(t *testing.T) {
	_, ok := FileSizeAux(1).FamilyID()
	require.False(t, ok)

	_, ok = FamilyAux(1).FileSize()
	require.False(t, ok)

	require.Equal(t, "family RP2040", FamilyAux(format.FamilyRP2040).String())
	require.Equal(t, "file size 42", FileSizeAux(42).String())
	require.Equal(t, "unused", UnusedAux().String())
	require.Equal(t, "FileSize", AuxFileSize.String())
}
