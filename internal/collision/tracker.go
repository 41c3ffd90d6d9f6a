package collision

import (
	"fmt"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/internal/hash"
)

// maxListed bounds the missing indices reported by Complete.
const maxListed = 8

// Tracker checks the block sequence of a UF2 file while it is decoded.
//
// It records every block index seen together with an xxHash64 fingerprint
// of the serialized block, so that a block repeated verbatim (common when
// files are concatenated or copied twice) can be told apart from two
// different blocks claiming the same index.
//
// Memory use grows with the number of tracked blocks, never with the block
// count the blocks claim.
type Tracker struct {
	blocks   map[uint32]uint64
	count    uint32
	hasCount bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		blocks: make(map[uint32]uint64),
	}
}

// Track records one block.
//
// Returns:
//   - ErrBlockCountMismatch if the block count differs from the count of the first tracked block
//   - ErrBlockIndexOutOfRange if the index is not below the count
//   - ErrDuplicateBlock if the same index was seen with an identical record;
//     the caller may skip the block
//   - ErrBlockConflict if the same index was seen with any field or data byte differing
func (t *Tracker) Track(b *block.Block) error {
	index, count := b.BlockIndex, b.BlockCount

	if !t.hasCount {
		t.count = count
		t.hasCount = true
	} else if count != t.count {
		return fmt.Errorf("%w: got %d, expected %d", errs.ErrBlockCountMismatch, count, t.count)
	}

	if index >= count {
		return fmt.Errorf("%w: index %d, count %d", errs.ErrBlockIndexOutOfRange, index, count)
	}

	var raw [block.BlockSize]byte
	b.PutBytes(raw[:])
	fingerprint := hash.Record(raw[:])

	if existing, exists := t.blocks[index]; exists {
		if existing == fingerprint {
			return errs.ErrDuplicateBlock
		}

		return fmt.Errorf("%w: index %d", errs.ErrBlockConflict, index)
	}

	t.blocks[index] = fingerprint

	return nil
}

// Count returns the number of distinct block indices tracked.
func (t *Tracker) Count() int {
	return len(t.blocks)
}

// Missing returns up to limit indices below the expected block count that
// were never tracked, in ascending order.
//
// The scan stops after limit hits, so it visits at most Count()+limit
// indices regardless of the claimed block count.
func (t *Tracker) Missing(limit int) []uint32 {
	var missing []uint32
	for i := uint32(0); i < t.count && len(missing) < limit; i++ {
		if _, ok := t.blocks[i]; !ok {
			missing = append(missing, i)
		}
	}

	return missing
}

// Complete returns ErrMissingBlock, listing up to the first few missing
// indices, if any block of the sequence was not tracked.
func (t *Tracker) Complete() error {
	// every tracked index is below count, so the difference is exact
	absent := uint64(t.count) - uint64(t.Count())
	if absent == 0 {
		return nil
	}

	first := t.Missing(maxListed)
	if absent > maxListed {
		return fmt.Errorf("%w: %d blocks missing, first %v", errs.ErrMissingBlock, absent, first)
	}

	return fmt.Errorf("%w: %v", errs.ErrMissingBlock, first)
}

// Reset clears all tracked state so the tracker can check another file.
func (t *Tracker) Reset() {
	clear(t.blocks)
	t.count = 0
	t.hasCount = false
}
