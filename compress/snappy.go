package compress

import (
	"bytes"
	"fmt"

	"github.com/golang/snappy"
)

// SnappyCompressor reads and writes framed Snappy artifacts (".sz").
//
// Only the framing format is supported; raw block-format Snappy carries no
// stream identifier and cannot be told apart from arbitrary binary data.
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy codec.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses data into a Snappy framed stream.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("snappy compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("snappy compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes a Snappy framed stream.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readLimited(snappy.NewReader(bytes.NewReader(data)), "snappy")
}
