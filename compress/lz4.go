package compress

import (
	"bytes"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor reads and writes LZ4 frame artifacts (".lz4"), the format
// produced by the lz4 command line tool.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
//
// Returns:
//   - LZ4Compressor: New LZ4 codec instance
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into an LZ4 frame with content checksums.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: LZ4 frame
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.ChecksumOption(true), lz4.SizeOption(uint64(len(data)))); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes an LZ4 frame.
//
// Parameters:
//   - data: LZ4 frame to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Corrupt frame, or ErrArtifactTooLarge past MaxArtifactSize
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readLimited(lz4.NewReader(bytes.NewReader(data)), "lz4")
}
