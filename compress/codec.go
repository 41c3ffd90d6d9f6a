package compress

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
)

// MaxArtifactSize bounds the decompressed size of an input artifact.
//
// It is far beyond any flash device uf2 images are built for and only exists
// so a corrupt or hostile artifact cannot exhaust memory.
const MaxArtifactSize = 256 << 20

// Compressor compresses a whole firmware artifact.
type Compressor interface {
	// Compress compresses data and returns the result in the artifact's
	// on-disk format, as written by the matching command line tool.
	//
	// The returned slice is newly allocated and owned by the caller; data is
	// not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed firmware artifact.
//
// Thread Safety: implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original artifact.
	//
	// An error is returned when data is corrupted, was produced by another
	// algorithm, or expands past MaxArtifactSize.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Snappy)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: ErrUnsupportedArtifact for an unknown compression type
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: compression %s", errs.ErrUnsupportedArtifact, compressionType)
	}
}

var suffixes = []struct {
	suffix string
	kind   format.CompressionType
}{
	{".zst", format.CompressionZstd},
	{".zstd", format.CompressionZstd},
	{".s2", format.CompressionS2},
	{".lz4", format.CompressionLZ4},
	{".sz", format.CompressionSnappy},
}

// DetectCompression picks the compression of an artifact from its file name.
//
// The match is case-insensitive. It returns the compression type together
// with the path stripped of the compression suffix, so "app.bin.zst" yields
// (CompressionZstd, "app.bin"). Paths without a known suffix are reported as
// CompressionNone and returned unchanged.
func DetectCompression(path string) (format.CompressionType, string) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range suffixes {
		if ext == s.suffix {
			return s.kind, path[:len(path)-len(ext)]
		}
	}

	return format.CompressionNone, path
}

// Suffix returns the canonical file suffix for compressionType, or "" for
// CompressionNone and unknown types.
func Suffix(compressionType format.CompressionType) string {
	for _, s := range suffixes {
		if s.kind == compressionType {
			return s.suffix
		}
	}

	return ""
}

func checkArtifactSize(n int) error {
	if n > MaxArtifactSize {
		return fmt.Errorf("%w: more than %d bytes", errs.ErrArtifactTooLarge, MaxArtifactSize)
	}

	return nil
}
