package main

import (
	"bytes"
	"crypto/md5" //nolint:gosec
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/compress"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func firmware(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*13 + 7)
	}

	return data
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(args, &out)

	return out.String(), err
}

func TestConvert_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := firmware(1000)
	bin := writeFile(t, dir, "app.bin", img)
	uf2 := filepath.Join(dir, "app.uf2")

	out, err := runCmd(t, "convert", "-target-addr", "0x10000000", "-family", "RP2040", bin)
	require.NoError(t, err)
	require.Equal(t, "Converting "+bin+" to "+uf2+"\nWritten 1000 bytes into 4 blocks.\n", out)

	encoded, err := os.ReadFile(uf2)
	require.NoError(t, err)
	require.Len(t, encoded, 4*block.BlockSize)

	for i := range 4 {
		b, err := block.Parse(encoded[i*block.BlockSize : (i+1)*block.BlockSize])
		require.NoError(t, err)
		require.Equal(t, uint32(0x10000000+i*256), b.TargetAddr) //nolint:gosec
		family, ok := b.Aux().FamilyID()
		require.True(t, ok)
		require.Equal(t, format.FamilyRP2040, family)
	}

	back := filepath.Join(dir, "back.bin")
	out, err = runCmd(t, "convert", "-strict", uf2, back)
	require.NoError(t, err)
	require.Equal(t, "Converting "+uf2+" to "+back+"\nRead 1000 bytes from 4 blocks.\n", out)

	decoded, err := os.ReadFile(back)
	require.NoError(t, err)
	require.Equal(t, img, decoded)
}

func TestConvert_DefaultOutputNames(t *testing.T) {
	require.Equal(t, "a/app.uf2", defaultOutput("a/app.bin", false))
	require.Equal(t, "a/app.uf2", defaultOutput("a/app", false))
	require.Equal(t, "a/app.bin", defaultOutput("a/app.UF2", true))
	require.True(t, isUF2("x.uf2"))
	require.True(t, isUF2("x.UF2"))
	require.False(t, isUF2("x.bin"))
}

func TestConvert_CompressedInput(t *testing.T) {
	dir := t.TempDir()
	img := firmware(3000)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4, format.CompressionSnappy} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.CreateCodec(ct)
			require.NoError(t, err)
			packed, err := codec.Compress(img)
			require.NoError(t, err)

			name := "fw-" + ct.String() + ".bin" + compress.Suffix(ct)
			path := writeFile(t, dir, name, packed)

			out, err := runCmd(t, "convert", "-target-addr", "0", path)
			require.NoError(t, err)
			require.Contains(t, out, "Written 3000 bytes into 12 blocks.")

			uf2 := filepath.Join(dir, "fw-"+ct.String()+".uf2")
			_, err = os.Stat(uf2)
			require.NoError(t, err)
		})
	}
}

func TestConvert_Profile(t *testing.T) {
	dir := t.TempDir()
	img := firmware(600)
	bin := writeFile(t, dir, "app.bin", img)
	profile := writeFile(t, dir, "board.yaml", []byte(`
target_addr: 0x2000
family: SAMD21
payload_size: 300
semver: 1.2.3
checksum: true
`))
	uf2 := filepath.Join(dir, "out.uf2")

	// The flag overrides the profile's payload size.
	_, err := runCmd(t, "convert", "-config", profile, "-payload-size", "200", "-device-type-id", "0xcafe", bin, uf2)
	require.NoError(t, err)

	encoded, err := os.ReadFile(uf2)
	require.NoError(t, err)
	require.Len(t, encoded, 3*block.BlockSize)

	b, err := block.Parse(encoded[block.BlockSize : 2*block.BlockSize])
	require.NoError(t, err)
	require.Equal(t, uint32(0x2000+200), b.TargetAddr)
	require.Equal(t, uint32(200), b.PayloadSize)

	sum, ok := b.Checksum()
	require.True(t, ok)
	require.Equal(t, md5.Sum(img[200:400]), sum.Digest) //nolint:gosec

	exts, ok := b.Extensions()
	require.True(t, ok)
	var got []string
	for ext := range exts.All() {
		got = append(got, ext.String())
	}
	require.Equal(t, []string{`SemverString "1.2.3"`, "DeviceTypeId 0xcafe"}, got)
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	bin := writeFile(t, dir, "app.bin", firmware(10))

	_, err := runCmd(t, "convert", bin)
	require.ErrorIs(t, err, errUsage, "target address is required")

	_, err = runCmd(t, "convert")
	require.ErrorIs(t, err, errUsage)

	_, err = runCmd(t, "convert", "-target-addr", "0x10", "-family", "toaster", bin)
	require.ErrorIs(t, err, errs.ErrUnknownFamily)

	_, err = runCmd(t, "convert", "-target-addr", "0x10", "-payload-size", "500", bin)
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)

	_, err = runCmd(t, "convert", "-target-addr", "0x10", filepath.Join(dir, "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, dir, "bad.uf2", make([]byte, block.BlockSize))
	_, err = runCmd(t, "convert", bad)
	require.ErrorIs(t, err, errs.ErrMagicNumber)

	_, err = runCmd(t, "bogus")
	require.ErrorIs(t, err, errUsage)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	bin := writeFile(t, dir, "app.bin", firmware(300))
	uf2 := filepath.Join(dir, "app.uf2")

	_, err := runCmd(t, "convert", "-target-addr", "0x1000", "-family", "0x68ed2b88",
		"-description", "ACME Toaster mk3", "-page-size", "256", bin)
	require.NoError(t, err)

	out, err := runCmd(t, "info", uf2)
	require.NoError(t, err)
	require.Contains(t, out, "block 0/2 addr=0x00001000 size=256 flags=FamilyId|ExtensionTags family SAMD21\n")
	require.Contains(t, out, "block 1/2 addr=0x00001100 size=44 ")
	require.Contains(t, out, `  DescriptionString "ACME Toaster mk3"`)
	require.Contains(t, out, "  TargetPageSize 0x100\n")
	require.Contains(t, out, "2 blocks, 300 payload bytes\n")

	out, err = runCmd(t, "info", "-summary", uf2)
	require.NoError(t, err)
	require.Equal(t, "2 blocks, 300 payload bytes\n", out)
}

func TestFamilies(t *testing.T) {
	out, err := runCmd(t, "families")
	require.NoError(t, err)
	require.Contains(t, out, "RP2040         0xe48bff56\n")
}
