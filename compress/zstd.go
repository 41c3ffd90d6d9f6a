package compress

// ZstdCompressor reads and writes zstd-framed artifacts (".zst").
//
// The implementation is chosen at build time: pure Go by default, or the cgo
// libzstd binding with the gozstd build tag. Both produce standard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
//
// Example:
//
//	codec := NewZstdCompressor()
//	image, err := codec.Decompress(raw)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
