// Package uftwo reads and writes UF2, the USB Flashing Format used by
// bootloaders that appear as a mass storage drive.
//
// A UF2 file is a sequence of independent 512-byte blocks. Each block carries
// up to 476 bytes of firmware together with the flash address they belong at,
// its position in the file and optional metadata: a board family ID, a
// checksum record and a list of extension tags.
//
// # Basic Usage
//
// Converting a raw binary to UF2 for an RP2040 board:
//
//	import "github.com/arloliu/uftwo"
//
//	uf2, err := uftwo.Encode(firmware,
//	    image.WithTargetAddr(0x10000000),
//	    image.WithFamilyID(format.FamilyRP2040),
//	)
//
// Converting it back:
//
//	firmware, err := uftwo.Decode(uf2)
//
// Inspecting individual blocks:
//
//	b, err := uftwo.ParseBlock(uf2[:512])
//	if exts, ok := b.Extensions(); ok {
//	    for ext := range exts.All() {
//	        fmt.Println(ext)
//	    }
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The block package
// holds the block codec, the image package the encoder and decoder, and the
// encoding package the extension tag writer.
package uftwo

import (
	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/format"
	"github.com/arloliu/uftwo/image"
)

// BlockSize is the size of every UF2 block in bytes.
const BlockSize = block.BlockSize

// NewEncoder creates an image encoder.
//
// Available options:
//   - image.WithTargetAddr(addr)
//   - image.WithPayloadSize(1..476)
//   - image.WithFamilyID(id)
//   - image.WithNotMainFlash()
//   - image.WithChecksum(fn)
//   - image.WithExtension(tag, data), image.WithSemver, image.WithDescription,
//     image.WithTargetPageSize, image.WithDeviceTypeID
//
// Example:
//
//	encoder, err := uftwo.NewEncoder(image.WithTargetAddr(0x2000))
func NewEncoder(opts ...image.EncoderOption) (*image.Encoder, error) {
	return image.NewEncoder(opts...)
}

// NewFamilyEncoder creates an encoder for a board family, placing the image
// at targetAddr. Further options are applied after the family settings.
//
// Example:
//
//	encoder, err := uftwo.NewFamilyEncoder(format.FamilyRP2040, 0x10000000)
func NewFamilyEncoder(family format.FamilyID, targetAddr uint32, opts ...image.EncoderOption) (*image.Encoder, error) {
	allOpts := append([]image.EncoderOption{
		image.WithFamilyID(family),
		image.WithTargetAddr(targetAddr),
	}, opts...)

	return image.NewEncoder(allOpts...)
}

// NewDecoder creates a UF2 decoder.
//
// Available options:
//   - image.WithStrictLength(true|false)
//   - image.WithSequenceCheck(true|false)
//   - image.WithSkipNotMainFlash(true|false)
func NewDecoder(opts ...image.DecoderOption) (*image.Decoder, error) {
	return image.NewDecoder(opts...)
}

// Encode converts a raw image into a UF2 file.
//
// Parameters:
//   - data: Raw image bytes
//   - opts: Encoder options (see NewEncoder)
//
// Returns:
//   - []byte: Concatenated 512-byte blocks
//   - error: Option or size error
func Encode(data []byte, opts ...image.EncoderOption) ([]byte, error) {
	enc, err := image.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(data)
}

// Decode converts a UF2 file back into the raw image by concatenating the
// payloads of its blocks.
//
// Parameters:
//   - data: UF2 file contents
//   - opts: Decoder options (see NewDecoder)
//
// Returns:
//   - []byte: Raw image
//   - error: Parse or sequence error of the first bad block
func Decode(data []byte, opts ...image.DecoderOption) ([]byte, error) {
	dec, err := image.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// NewBlock creates a block holding payload. See block.New.
func NewBlock(index, count, targetAddr uint32, payload []byte) block.Block {
	return block.New(index, count, targetAddr, payload)
}

// ParseBlock parses and validates one raw 512-byte block. See block.Parse.
func ParseBlock(data []byte) (block.Block, error) {
	return block.Parse(data)
}
