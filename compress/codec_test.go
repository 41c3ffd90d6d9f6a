package compress

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":   NewNoOpCompressor(),
		"LZ4":    NewLZ4Compressor(),
		"S2":     NewS2Compressor(),
		"Snappy": NewSnappyCompressor(),
		"Zstd":   NewZstdCompressor(),
	}
}

// firmwareImage mimics a flash image: a vector table, code-like bytes and a
// long run of erased (0xFF) flash.
func firmwareImage(size int) []byte {
	data := bytes.Repeat([]byte{0xFF}, size)
	for i := 0; i < size/2; i++ {
		data[i] = byte((i*7 + i*i) % 251)
	}

	return data
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		name  string
		cType format.CompressionType
		want  Codec
	}{
		{name: "none", cType: format.CompressionNone, want: NoOpCompressor{}},
		{name: "zstd", cType: format.CompressionZstd, want: ZstdCompressor{}},
		{name: "s2", cType: format.CompressionS2, want: S2Compressor{}},
		{name: "lz4", cType: format.CompressionLZ4, want: LZ4Compressor{}},
		{name: "snappy", cType: format.CompressionSnappy, want: SnappyCompressor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := CreateCodec(tt.cType)
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionType(0xFF))
		require.ErrorIs(t, err, errs.ErrUnsupportedArtifact)

		_, err = CreateCodec(format.CompressionType(0))
		require.ErrorIs(t, err, errs.ErrUnsupportedArtifact)
	})
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path      string
		wantType  format.CompressionType
		wantPlain string
	}{
		{"app.bin.zst", format.CompressionZstd, "app.bin"},
		{"app.bin.ZSTD", format.CompressionZstd, "app.bin"},
		{"dir/app.bin.s2", format.CompressionS2, "dir/app.bin"},
		{"app.hex.lz4", format.CompressionLZ4, "app.hex"},
		{"app.bin.SZ", format.CompressionSnappy, "app.bin"},
		{"app.bin", format.CompressionNone, "app.bin"},
		{"app.uf2", format.CompressionNone, "app.uf2"},
		{"noext", format.CompressionNone, "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			gotType, gotPlain := DetectCompression(tt.path)
			require.Equal(t, tt.wantType, gotType)
			require.Equal(t, tt.wantPlain, gotPlain)
		})
	}
}

func TestSuffix(t *testing.T) {
	require.Equal(t, ".zst", Suffix(format.CompressionZstd))
	require.Equal(t, ".s2", Suffix(format.CompressionS2))
	require.Equal(t, ".lz4", Suffix(format.CompressionLZ4))
	require.Equal(t, ".sz", Suffix(format.CompressionSnappy))
	require.Empty(t, Suffix(format.CompressionNone))

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4, format.CompressionSnappy} {
		got, plain := DetectCompression("fw.bin" + Suffix(ct))
		require.Equal(t, ct, got)
		require.Equal(t, "fw.bin", plain)
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, decompressed)

			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "one_block_payload", data: firmwareImage(256)},
		{name: "odd_size", data: firmwareImage(4097)},
		{name: "erased_flash", data: bytes.Repeat([]byte{0xFF}, 1024*1024)},
		{name: "firmware_like", data: firmwareImage(256 * 1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotEmpty(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_Compresses(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 64*1024)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data)/10)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte("definitely not a compressed firmware artifact")

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_Truncated(t *testing.T) {
	data := firmwareImage(16 * 1024)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed[:len(compressed)/2])
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := firmwareImage(32 * 1024)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 8)

			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range 10 {
						compressed, err := codec.Compress(data)
						if err != nil {
							errCh <- err
							return
						}
						out, err := codec.Decompress(compressed)
						if err != nil {
							errCh <- err
							return
						}
						if !bytes.Equal(out, data) {
							errCh <- errors.New("round trip mismatch")
							return
						}
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckArtifactSize(t *testing.T) {
	require.NoError(t, checkArtifactSize(0))
	require.NoError(t, checkArtifactSize(MaxArtifactSize))
	require.ErrorIs(t, checkArtifactSize(MaxArtifactSize+1), errs.ErrArtifactTooLarge)
}
