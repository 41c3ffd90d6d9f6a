package block

// Magic numbers identifying a UF2 block.
const (
	MagicStart0 = 0x0A324655 // "UF2\n" read as a little-endian uint32
	MagicStart1 = 0x9E5D5157
	MagicEnd    = 0x0AB16F30
)

// Sizes of the fixed block layout.
const (
	BlockSize      = 512 // serialized block size in bytes
	HeaderSize     = 32  // magic numbers plus the six scalar fields
	MaxPayloadSize = 476 // size of the data section
	TrailerSize    = 4   // final magic number
	ChecksumSize   = 24  // checksum record stored at the end of the data section

	ExtensionAlign      = 4 // extension records start on 4-byte boundaries
	ExtensionHeaderSize = 4 // length byte plus 24-bit tag
	MaxExtensionSize    = 255
)

// Byte offsets of every field in a serialized block.
const (
	offMagicStart0      = 0
	offMagicStart1      = 4
	offFlags            = 8
	offTargetAddr       = 12
	offPayloadSize      = 16
	offBlockIndex       = 20
	offBlockCount       = 24
	offFamilyOrFileSize = 28
	offData             = HeaderSize
	offMagicEnd         = offData + MaxPayloadSize
)

// The layout must add up to exactly BlockSize; either constant overflows otherwise.
const (
	_ = uint(BlockSize - (offMagicEnd + TrailerSize))
	_ = uint((offMagicEnd + TrailerSize) - BlockSize)
)
