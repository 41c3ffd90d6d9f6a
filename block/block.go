package block

import (
	"fmt"

	"github.com/arloliu/uftwo/endian"
	"github.com/arloliu/uftwo/errs"
)

// Block is one 512-byte UF2 transfer unit.
//
// The three magic numbers are not stored: Parse rejects any record where they
// differ from MagicStart0, MagicStart1 and MagicEnd, and Bytes always writes
// them, so every Block value describes a block with correct magic.
//
// A Block is a plain value with no references to the buffer it was parsed
// from; copying it copies the data section.
type Block struct {
	// Flags controls how the aux field and the tail of Data are interpreted.
	//
	// Offset: 8, Size: 4 bytes
	Flags Flags
	// TargetAddr is the flash address the payload should be written to.
	//
	// Offset: 12, Size: 4 bytes
	TargetAddr uint32
	// PayloadSize is the number of meaningful bytes at the start of Data, at most 476.
	//
	// Offset: 16, Size: 4 bytes
	PayloadSize uint32
	// BlockIndex is the zero-based sequence number of this block.
	//
	// Offset: 20, Size: 4 bytes
	BlockIndex uint32
	// BlockCount is the total number of blocks in the transfer.
	//
	// Offset: 24, Size: 4 bytes
	BlockCount uint32
	// FamilyOrFileSize is the raw aux field; use Aux and SetAux for its typed form.
	//
	// Offset: 28, Size: 4 bytes
	FamilyOrFileSize uint32
	// Data is the payload, padded with zeros.
	//
	// Offset: 32, Size: 476 bytes
	Data [MaxPayloadSize]byte
}

// New creates a block holding payload at targetAddr.
//
// The block is the index-th of count blocks; PayloadSize is set to the length
// of payload and the rest of Data is zero. New panics if payload is longer than
// MaxPayloadSize or index is greater than count, since both are decided by the
// caller's own chunking.
func New(index, count, targetAddr uint32, payload []byte) Block {
	if index > count {
		panic(fmt.Sprintf("block: index %d exceeds block count %d", index, count))
	}
	if len(payload) > MaxPayloadSize {
		panic(fmt.Sprintf("block: payload of %d bytes exceeds %d", len(payload), MaxPayloadSize))
	}

	b := Block{
		TargetAddr:  targetAddr,
		PayloadSize: uint32(len(payload)), //nolint:gosec
		BlockIndex:  index,
		BlockCount:  count,
	}
	copy(b.Data[:], payload)

	return b
}

// Parse parses and validates a raw 512-byte block.
//
// Returns:
//   - Block: an owned copy of the block
//   - error: ErrInputBuffer if data is not exactly 512 bytes, ErrMagicNumber if any
//     magic number is wrong, ErrPayloadSize if the payload size exceeds 476
func Parse(data []byte) (Block, error) {
	var b Block
	if err := b.Parse(data); err != nil {
		return Block{}, err
	}

	return b, nil
}

// Parse parses and validates a raw 512-byte block into b.
//
// b is left unchanged when an error is returned.
func (b *Block) Parse(data []byte) error {
	if len(data) != BlockSize {
		return errs.ErrInputBuffer
	}

	engine := endian.GetLittleEndianEngine()

	if engine.Uint32(data[offMagicStart0:]) != MagicStart0 ||
		engine.Uint32(data[offMagicStart1:]) != MagicStart1 ||
		engine.Uint32(data[offMagicEnd:]) != MagicEnd {
		return errs.ErrMagicNumber
	}

	payloadSize := engine.Uint32(data[offPayloadSize:])
	if payloadSize > MaxPayloadSize {
		return errs.ErrPayloadSize
	}

	b.Flags = Flags(engine.Uint32(data[offFlags:]))
	b.TargetAddr = engine.Uint32(data[offTargetAddr:])
	b.PayloadSize = payloadSize
	b.BlockIndex = engine.Uint32(data[offBlockIndex:])
	b.BlockCount = engine.Uint32(data[offBlockCount:])
	b.FamilyOrFileSize = engine.Uint32(data[offFamilyOrFileSize:])
	copy(b.Data[:], data[offData:offMagicEnd])

	return nil
}

// Bytes serializes the block into a new 512-byte slice.
func (b *Block) Bytes() []byte {
	buf := make([]byte, BlockSize)
	b.PutBytes(buf)

	return buf
}

// PutBytes serializes the block into dst, which must be at least 512 bytes long.
func (b *Block) PutBytes(dst []byte) {
	_ = dst[BlockSize-1] // bounds check hint to compiler

	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(dst[offMagicStart0:], MagicStart0)
	engine.PutUint32(dst[offMagicStart1:], MagicStart1)
	engine.PutUint32(dst[offFlags:], uint32(b.Flags))
	engine.PutUint32(dst[offTargetAddr:], b.TargetAddr)
	engine.PutUint32(dst[offPayloadSize:], b.PayloadSize)
	engine.PutUint32(dst[offBlockIndex:], b.BlockIndex)
	engine.PutUint32(dst[offBlockCount:], b.BlockCount)
	engine.PutUint32(dst[offFamilyOrFileSize:], b.FamilyOrFileSize)
	copy(dst[offData:offMagicEnd], b.Data[:])
	engine.PutUint32(dst[offMagicEnd:], MagicEnd)
}

// AppendBytes appends the serialized block to dst and returns the extended slice.
func (b *Block) AppendBytes(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = engine.AppendUint32(dst, MagicStart0)
	dst = engine.AppendUint32(dst, MagicStart1)
	dst = engine.AppendUint32(dst, uint32(b.Flags))
	dst = engine.AppendUint32(dst, b.TargetAddr)
	dst = engine.AppendUint32(dst, b.PayloadSize)
	dst = engine.AppendUint32(dst, b.BlockIndex)
	dst = engine.AppendUint32(dst, b.BlockCount)
	dst = engine.AppendUint32(dst, b.FamilyOrFileSize)
	dst = append(dst, b.Data[:]...)

	return engine.AppendUint32(dst, MagicEnd)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *Block) MarshalBinary() ([]byte, error) {
	return b.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler with the same validation as Parse.
func (b *Block) UnmarshalBinary(data []byte) error {
	return b.Parse(data)
}

// Payload returns the meaningful part of Data.
//
// The returned slice aliases the block's data section. A PayloadSize larger
// than MaxPayloadSize, which Parse never produces, is clamped.
func (b *Block) Payload() []byte {
	return b.Data[:min(b.PayloadSize, MaxPayloadSize)]
}

// Aux returns the typed form of the family-or-file-size field.
func (b *Block) Aux() Aux {
	return DecodeAux(b.Flags, b.FamilyOrFileSize)
}

// SetAux stores a in the family-or-file-size field and sets or clears
// FlagFamilyID to match.
func (b *Block) SetAux(a Aux) {
	b.Flags, b.FamilyOrFileSize = EncodeAux(b.Flags, a)
}

// HasChecksum reports whether the checksum flag is set.
func (b *Block) HasChecksum() bool {
	return b.Flags.HasChecksum()
}

// Checksum returns the checksum record held in the last 24 bytes of Data.
//
// The bytes are only interpreted when FlagChecksum is set; otherwise the
// second return value is false.
func (b *Block) Checksum() (Checksum, bool) {
	if !b.HasChecksum() {
		return Checksum{}, false
	}

	c, err := ParseChecksum(b.Data[MaxPayloadSize-ChecksumSize:])
	if err != nil {
		return Checksum{}, false
	}

	return c, true
}

// SetChecksum overwrites the last 24 bytes of Data with c.
//
// It does not set FlagChecksum.
func (b *Block) SetChecksum(c Checksum) {
	c.put(b.Data[MaxPayloadSize-ChecksumSize:])
}

// HasExtensions reports whether the extension tags flag is set.
func (b *Block) HasExtensions() bool {
	return b.Flags.HasExtensionTags()
}

// ExtensionRegion returns the part of Data that may hold extension records:
// from PayloadSize rounded up to a multiple of 4 to the end of Data.
//
// The slice aliases the block's data section. It is returned regardless of
// FlagExtensionTags.
func (b *Block) ExtensionRegion() []byte {
	start := ExtensionRegionStart(b.PayloadSize)
	if start > MaxPayloadSize {
		return nil
	}

	return b.Data[start:]
}

// Extensions returns a cursor over the block's extension records.
//
// When FlagExtensionTags is not set the region has no meaning and the second
// return value is false. Each call returns a new cursor positioned at the
// first record; the cursor reads the block's data section directly, so b must
// not be modified while it is in use.
func (b *Block) Extensions() (*Extensions, bool) {
	if !b.HasExtensions() {
		return nil, false
	}

	return NewExtensions(b.ExtensionRegion()), true
}

// SetExtensions copies an encoded extension list to the start of the
// extension region.
//
// It does not set FlagExtensionTags. ErrExtensionOverflow is returned when the
// list does not fit, or when it would overlap the checksum record while
// FlagChecksum is set.
func (b *Block) SetExtensions(records []byte) error {
	region := b.ExtensionRegion()

	limit := len(region)
	if b.HasChecksum() {
		limit -= ChecksumSize
	}
	if len(records) > limit {
		return fmt.Errorf("%w: %d bytes, %d available", errs.ErrExtensionOverflow, len(records), max(limit, 0))
	}

	copy(region, records)

	return nil
}

// ExtensionRegionStart returns the offset within Data where extension records
// begin for a block carrying payloadSize bytes of payload.
func ExtensionRegionStart(payloadSize uint32) int {
	return alignUp(int(payloadSize), ExtensionAlign)
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}
