package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	// "UF2\n" is the first magic number when read as little-endian
	require.Equal(t, uint32(0x0A324655), engine.Uint32([]byte("UF2\n")))

	buf := engine.AppendUint32(nil, 0x0AB16F30)
	require.Equal(t, []byte{0x30, 0x6F, 0xB1, 0x0A}, buf)
}

func TestUint24(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  uint32
	}{
		{"zero", []byte{0, 0, 0}, 0},
		{"semver tag", []byte{0xbc, 0xc7, 0x9f}, 0x9fc7bc},
		{"description tag", []byte{0x9d, 0x0d, 0x65}, 0x650d9d},
		{"max", []byte{0xff, 0xff, 0xff}, 0xffffff},
		{"longer slice ignores tail", []byte{0x01, 0x02, 0x03, 0x04}, 0x030201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Uint24(tt.bytes))
		})
	}
}

func TestPutUint24(t *testing.T) {
	b := make([]byte, 4)
	PutUint24(b, 0xAB9fc7bc)

	require.Equal(t, []byte{0xbc, 0xc7, 0x9f, 0x00}, b, "high byte must be dropped")
	require.Equal(t, uint32(0x9fc7bc), Uint24(b))
}

func TestUint24_ShortSlicePanics(t *testing.T) {
	require.Panics(t, func() { Uint24([]byte{1, 2}) })
	require.Panics(t, func() { PutUint24(make([]byte, 2), 1) })
}
