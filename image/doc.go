// Package image converts between raw firmware images and UF2 files.
//
// An Encoder cuts an image into chunks of a configurable size (256 bytes by
// default, which matches the flash page size of most targets) and wraps each
// chunk in a 512-byte block addressed relative to a base target address.
// Blocks may additionally carry a family ID, a per-block checksum record and
// an extension tag list.
//
// A Decoder parses a UF2 file back into its blocks and concatenates their
// payloads in file order. Optional checks verify the block sequence and
// reject a truncated trailing record.
//
// Basic usage:
//
//	enc, err := image.NewEncoder(
//		image.WithTargetAddr(0x10000000),
//		image.WithFamilyID(format.FamilyRP2040),
//	)
//	if err != nil {
//		return err
//	}
//	uf2, err := enc.Encode(firmware)
//
//	dec, _ := image.NewDecoder(image.WithSequenceCheck(true))
//	firmware, err = dec.Decode(uf2)
//
// Encoders and Decoders hold only configuration; both are safe for
// concurrent use once constructed.
package image
