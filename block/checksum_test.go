package block

import (
	"testing"

	"github.com/arloliu/uftwo/errs"
	"github.com/stretchr/testify/require"
)

func TestChecksum_Bytes(t *testing.T) {
	c := Checksum{Start: 0x01020304, Length: 0x100}
	for i := range c.Digest {
		c.Digest[i] = byte(0xF0 + i)
	}

	data := c.Bytes()
	require.Len(t, data, ChecksumSize)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, data[0:4])
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, data[4:8])
	require.Equal(t, c.Digest[:], data[8:24])

	parsed, err := ParseChecksum(data)
	require.NoError(t, err)
	require.Equal(t, c, parsed)
}

func TestParseChecksum_InvalidSize(t *testing.T) {
	_, err := ParseChecksum(make([]byte, ChecksumSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidChecksumSize)

	_, err = ParseChecksum(make([]byte, ChecksumSize+1))
	require.ErrorIs(t, err, errs.ErrInvalidChecksumSize)
}
