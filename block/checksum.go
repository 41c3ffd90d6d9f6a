package block

import (
	"github.com/arloliu/uftwo/endian"
	"github.com/arloliu/uftwo/errs"
)

// Checksum describes a range of the target image and its digest.
//
// Flashing tools compare it against the device contents to skip writing
// blocks whose data has not changed. The digest algorithm is chosen by
// whoever produced the file; this package only stores the bytes.
type Checksum struct {
	// Start is the byte offset of the checked range in the target image.
	//
	// Offset: 0, Size: 4 bytes
	Start uint32
	// Length is the number of bytes in the checked range.
	//
	// Offset: 4, Size: 4 bytes
	Length uint32
	// Digest holds the checksum bytes.
	//
	// Offset: 8, Size: 16 bytes
	Digest [16]byte
}

// ParseChecksum parses a 24-byte checksum record.
func ParseChecksum(data []byte) (Checksum, error) {
	if len(data) != ChecksumSize {
		return Checksum{}, errs.ErrInvalidChecksumSize
	}

	engine := endian.GetLittleEndianEngine()

	c := Checksum{
		Start:  engine.Uint32(data[0:4]),
		Length: engine.Uint32(data[4:8]),
	}
	copy(c.Digest[:], data[8:24])

	return c, nil
}

// Bytes returns the 24-byte record.
func (c Checksum) Bytes() []byte {
	b := make([]byte, ChecksumSize)
	c.put(b)

	return b
}

func (c Checksum) put(b []byte) {
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(b[0:4], c.Start)
	engine.PutUint32(b[4:8], c.Length)
	copy(b[8:24], c.Digest[:])
}
