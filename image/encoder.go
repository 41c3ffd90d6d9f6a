package image

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/internal/options"
	"github.com/arloliu/uftwo/internal/pool"
)

// Encoder converts raw images into UF2 blocks.
//
// Every block carries the settings of the embedded EncoderConfig. The encoder
// holds no per-image state and can be shared between goroutines.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: Optional configuration (target address, payload size, family ID,
//     checksum, extensions)
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: ErrInvalidPayloadSize, ErrNilChecksumFunc, ErrInvalidExtensionTag,
//     ErrExtensionTooLarge or ErrExtensionOverflow for invalid options
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// BlockCount returns the number of blocks needed for an image of size bytes.
//
// Returns:
//   - uint32: Block count, 0 for an empty image
//   - error: ErrImageTooLarge if the count does not fit in 32 bits,
//     ErrAddressOverflow if the image would run past address 0xFFFFFFFF
func (e *Encoder) BlockCount(size int) (uint32, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: negative size %d", errs.ErrImageTooLarge, size)
	}

	count := (uint64(size) + uint64(e.payloadSize) - 1) / uint64(e.payloadSize)
	if count > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes need %d blocks", errs.ErrImageTooLarge, size, count)
	}

	if end := uint64(e.targetAddr) + uint64(size); end > math.MaxUint32+1 {
		return 0, fmt.Errorf("%w: 0x%08x + %d bytes", errs.ErrAddressOverflow, e.targetAddr, size)
	}

	return uint32(count), nil
}

// Encode converts image into a UF2 file.
//
// Returns:
//   - []byte: Concatenated 512-byte blocks, empty for an empty image
//   - error: ErrImageTooLarge or ErrAddressOverflow
func (e *Encoder) Encode(image []byte) ([]byte, error) {
	count, err := e.BlockCount(len(image))
	if err != nil {
		return nil, err
	}

	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	buf.Grow(int(count) * block.BlockSize)
	for i := range count {
		b := e.block(i, count, image)
		b.PutBytes(buf.Extend(block.BlockSize))
	}

	return buf.Clone(), nil
}

// Blocks converts image into block values.
//
// Returns:
//   - []block.Block: One block per chunk, in index order
//   - error: ErrImageTooLarge or ErrAddressOverflow
func (e *Encoder) Blocks(image []byte) ([]block.Block, error) {
	count, err := e.BlockCount(len(image))
	if err != nil {
		return nil, err
	}

	blocks := make([]block.Block, 0, count)
	for i := range count {
		blocks = append(blocks, e.block(i, count, image))
	}

	return blocks, nil
}

// All returns an iterator over the blocks of image, keyed by block index.
// Blocks are built lazily, so a large image never has all its blocks in
// memory at once.
//
// The image size is checked before the iterator is returned; the iterator
// itself cannot fail. image must not be modified while iterating.
func (e *Encoder) All(image []byte) (iter.Seq2[int, block.Block], error) {
	count, err := e.BlockCount(len(image))
	if err != nil {
		return nil, err
	}

	return func(yield func(int, block.Block) bool) {
		for i := range count {
			if !yield(int(i), e.block(i, count, image)) {
				return
			}
		}
	}, nil
}

// block builds block i of count from image. Sizes were checked by BlockCount.
func (e *Encoder) block(i, count uint32, image []byte) block.Block {
	start := int(i) * e.payloadSize
	end := min(start+e.payloadSize, len(image))
	chunk := image[start:end]
	addr := e.targetAddr + uint32(start) //nolint:gosec

	b := block.New(i, count, addr, chunk)

	if e.notMainFlash {
		b.Flags.Set(block.FlagNotMainFlash)
	}
	if e.hasFamily {
		b.SetAux(block.FamilyAux(e.family))
	}
	if e.checksum != nil {
		b.Flags.Set(block.FlagChecksum)
		b.SetChecksum(block.Checksum{
			Start:  addr,
			Length: uint32(len(chunk)), //nolint:gosec
			Digest: e.checksum(chunk),
		})
	}
	if len(e.records) > 0 {
		b.Flags.Set(block.FlagExtensionTags)
		// Fit was verified against a full-size chunk in validate.
		_ = b.SetExtensions(e.records)
	}

	return b
}
