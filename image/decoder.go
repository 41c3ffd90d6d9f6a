package image

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/internal/collision"
	"github.com/arloliu/uftwo/internal/options"
	"github.com/arloliu/uftwo/internal/pool"
)

// maxPooledTracker bounds the size of trackers returned to trackerPool.
const maxPooledTracker = 1 << 16

var trackerPool = sync.Pool{
	New: func() any { return collision.NewTracker() },
}

func getTracker() *collision.Tracker {
	t, _ := trackerPool.Get().(*collision.Tracker)
	return t
}

func putTracker(t *collision.Tracker) {
	if t.Count() > maxPooledTracker {
		return
	}
	t.Reset()
	trackerPool.Put(t)
}

// Decoder converts UF2 files back into raw images.
//
// The decoder holds only configuration and can be shared between goroutines.
type Decoder struct {
	*DecoderConfig
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: Optional strictness settings
//
// Returns:
//   - *Decoder: New decoder instance
//   - error: Option error, if any
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	config := NewDecoderConfig()

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Decoder{DecoderConfig: config}, nil
}

// Decode parses every 512-byte record of data and concatenates the block
// payloads in file order.
//
// Returns:
//   - []byte: Decoded image, empty when data holds no complete record
//   - error: The first parse or sequence error, wrapped as "block <n>: <err>"
//     where n is the record position in data
func (d *Decoder) Decode(data []byte) ([]byte, error) {
	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	err := d.walk(data, func(b *block.Block) bool {
		buf.MustWrite(b.Payload())
		return true
	})
	if err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Blocks parses every 512-byte record of data.
//
// Returns:
//   - []block.Block: Parsed blocks in file order, after skipping and
//     duplicate removal
//   - error: The first parse or sequence error
func (d *Decoder) Blocks(data []byte) ([]block.Block, error) {
	blocks := make([]block.Block, 0, len(data)/block.BlockSize)

	err := d.walk(data, func(b *block.Block) bool {
		blocks = append(blocks, *b)
		return true
	})
	if err != nil {
		return nil, err
	}

	return blocks, nil
}

// All returns an iterator over the blocks of data in file order.
//
// A failure is yielded once, with a zero block, and ends the iteration; the
// sequence check's missing-block error arrives after the last block.
func (d *Decoder) All(data []byte) iter.Seq2[block.Block, error] {
	return func(yield func(block.Block, error) bool) {
		stopped := false
		err := d.walk(data, func(b *block.Block) bool {
			if !yield(*b, nil) {
				stopped = true
				return false
			}

			return true
		})
		if err != nil && !stopped {
			yield(block.Block{}, err)
		}
	}
}

// walk parses each record and hands the accepted blocks to fn, which
// returns false to stop early.
func (d *Decoder) walk(data []byte, fn func(b *block.Block) bool) error {
	if rem := len(data) % block.BlockSize; rem != 0 && d.strictLength {
		return fmt.Errorf("%w: %d trailing bytes after %d blocks", errs.ErrTruncatedBlock, rem, len(data)/block.BlockSize)
	}

	var tracker *collision.Tracker
	if d.sequenceCheck {
		tracker = getTracker()
		defer putTracker(tracker)
	}

	var b block.Block
	for pos := 0; (pos+1)*block.BlockSize <= len(data); pos++ {
		if err := b.Parse(data[pos*block.BlockSize : (pos+1)*block.BlockSize]); err != nil {
			return fmt.Errorf("block %d: %w", pos, err)
		}

		if tracker != nil {
			err := tracker.Track(&b)
			if errors.Is(err, errs.ErrDuplicateBlock) {
				continue
			}
			if err != nil {
				return fmt.Errorf("block %d: %w", pos, err)
			}
		}

		if d.skipNotMainFlash && b.Flags.IsNotMainFlash() {
			continue
		}

		if !fn(&b) {
			return nil
		}
	}

	if tracker != nil {
		return tracker.Complete()
	}

	return nil
}
