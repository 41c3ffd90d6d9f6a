// Package errs defines the sentinel errors returned by uftwo packages.
//
// Callers should compare with errors.Is, since most errors are wrapped with
// context (for example the index of the offending block) before being returned.
package errs

import "errors"

// Block parsing errors.
var (
	// ErrInputBuffer is returned when a raw block is not exactly 512 bytes long.
	ErrInputBuffer = errors.New("input buffer is not a 512-byte block")
	// ErrMagicNumber is returned when one or more of the three magic numbers are incorrect.
	ErrMagicNumber = errors.New("magic number incorrect")
	// ErrPayloadSize is returned when the declared payload size exceeds 476 bytes.
	ErrPayloadSize = errors.New("payload size too large")
	// ErrInvalidChecksumSize is returned when a checksum record is not 24 bytes.
	ErrInvalidChecksumSize = errors.New("invalid checksum record size")
	// ErrMalformedExtension is reported when an extension record runs past the extension region.
	ErrMalformedExtension = errors.New("malformed extension record")
)

// Encoder errors.
var (
	ErrInvalidPayloadSize  = errors.New("invalid block payload size")
	ErrInvalidExtensionTag = errors.New("extension tag does not fit in 24 bits")
	ErrExtensionTooLarge   = errors.New("extension record exceeds 255 bytes")
	ErrExtensionOverflow   = errors.New("extensions do not fit in block padding")
	ErrImageTooLarge       = errors.New("image needs more blocks than a block count can express")
	ErrAddressOverflow     = errors.New("image extends past the 32-bit address space")
	ErrNilChecksumFunc     = errors.New("checksum function is nil")
	ErrUnknownFamily       = errors.New("unknown family id")
	ErrUnsupportedArtifact = errors.New("unsupported compression for input artifact")
	ErrArtifactTooLarge    = errors.New("decompressed artifact exceeds size limit")
)

// Decoder errors.
var (
	ErrTruncatedBlock       = errors.New("trailing data shorter than a block")
	ErrBlockCountMismatch   = errors.New("block count differs between blocks")
	ErrBlockIndexOutOfRange = errors.New("block index is not below block count")
	ErrDuplicateBlock       = errors.New("duplicate block")
	ErrBlockConflict        = errors.New("block index repeated with different payload")
	ErrMissingBlock         = errors.New("missing block")
)
