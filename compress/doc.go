// Package compress reads and writes compressed firmware artifacts.
//
// Build systems often ship raw firmware images compressed, for example
// "app.bin.zst". The uf2conv command decompresses such an input before
// cutting it into UF2 blocks. The UF2 container itself is never compressed:
// a UF2 file is copied verbatim onto a bootloader's mass storage device,
// which only understands plain 512-byte blocks.
//
// Supported formats, each matching the frame format of its reference tool:
//
//   - None: plain file (format.CompressionNone)
//   - Zstd: zstd frames, ".zst" (format.CompressionZstd)
//   - S2: S2 streams as written by s2c, ".s2" (format.CompressionS2)
//   - LZ4: LZ4 frames as written by lz4, ".lz4" (format.CompressionLZ4)
//   - Snappy: Snappy framed streams, ".sz" (format.CompressionSnappy)
//
// The codec for a file is picked from its name:
//
//	kind, plain := compress.DetectCompression("app.bin.zst")
//	codec, _ := compress.CreateCodec(kind)
//	image, err := codec.Decompress(raw)
//
// Zstd is backed by github.com/klauspost/compress/zstd. Building with the
// gozstd tag switches to the cgo binding github.com/valyala/gozstd.
//
// All codecs are safe for concurrent use. Decompression is capped at
// MaxArtifactSize bytes.
package compress
