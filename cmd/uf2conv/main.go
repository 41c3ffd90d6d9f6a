// Command uf2conv converts firmware images between raw binary and UF2.
//
// Usage:
//
//	uf2conv convert [flags] INPUT [OUTPUT]
//	uf2conv info [flags] INPUT
//	uf2conv families
//
// The direction of convert follows the input extension: a .uf2 input is
// decoded to a binary, anything else is encoded to UF2. Inputs compressed
// with zstd, s2, lz4 or snappy (app.bin.zst) are decompressed first.
package main

import (
	"crypto/md5" //nolint:gosec
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/compress"
	"github.com/arloliu/uftwo/format"
	"github.com/arloliu/uftwo/image"
	"github.com/arloliu/uftwo/internal/config"
	"github.com/arloliu/uftwo/internal/logging"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errUsage
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:], stdout)
	case "info":
		return runInfo(args[1:], stdout)
	case "families":
		for _, name := range format.KnownFamilies() {
			id, _ := format.ParseFamilyID(name)
			fmt.Fprintf(stdout, "%-14s 0x%08x\n", name, uint32(id))
		}

		return nil
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return nil
	default:
		usage(os.Stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  uf2conv convert [flags] INPUT [OUTPUT]   convert between binary and UF2")
	fmt.Fprintln(w, "  uf2conv info [flags] INPUT               print the blocks of a UF2 file")
	fmt.Fprintln(w, "  uf2conv families                         list well-known family IDs")
}

// convertFlags holds the raw flag values of the convert command.
type convertFlags struct {
	targetAddr   string
	family       string
	payloadSize  int
	configPath   string
	semver       string
	description  string
	pageSize     string
	deviceTypeID string
	checksum     bool
	notMainFlash bool
	strict       bool
	skipNotMain  bool
	logLevel     string
}

func runConvert(args []string, stdout io.Writer) error {
	var f convertFlags

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVar(&f.targetAddr, "target-addr", "", "Target address in flash memory, hex with 0x prefix or decimal")
	fs.StringVar(&f.family, "family", "", "Family ID, as a name (RP2040) or number")
	fs.IntVar(&f.payloadSize, "payload-size", image.DefaultPayloadSize, "Image bytes per block (1-476)")
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML conversion profile")
	fs.StringVar(&f.semver, "semver", "", "Add a semver extension tag")
	fs.StringVar(&f.description, "description", "", "Add a device description extension tag")
	fs.StringVar(&f.pageSize, "page-size", "", "Add a target page size extension tag")
	fs.StringVar(&f.deviceTypeID, "device-type-id", "", "Add a device type ID extension tag")
	fs.BoolVar(&f.checksum, "checksum", false, "Add an MD5 checksum record to every block")
	fs.BoolVar(&f.notMainFlash, "not-main-flash", false, "Mark blocks as not destined for main flash")
	fs.BoolVar(&f.strict, "strict", false, "When decoding, reject truncated files and broken block sequences")
	fs.BoolVar(&f.skipNotMain, "skip-not-main-flash", false, "When decoding, leave out blocks marked not-main-flash")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("%w: convert needs INPUT and optional OUTPUT", errUsage)
	}

	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level)
	logger := logging.NewComponentLogger(logging.CompConvert)

	input := fs.Arg(0)
	data, plain, err := readInput(input, logger)
	if err != nil {
		return err
	}

	toBinary := isUF2(plain)

	output := fs.Arg(1)
	if output == "" {
		output = defaultOutput(plain, toBinary)
	}

	fmt.Fprintf(stdout, "Converting %s to %s\n", input, output)

	if toBinary {
		return uf2ToBin(data, output, f, stdout, logger)
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	opts, err := encoderOptions(f, set, logger)
	if err != nil {
		return err
	}

	return binToUF2(data, output, opts, stdout, logger)
}

// encoderOptions merges the profile, if any, with the flags; flags given on
// the command line win.
func encoderOptions(f convertFlags, set map[string]bool, logger *slog.Logger) ([]image.EncoderOption, error) {
	profile := &config.Profile{}
	if f.configPath != "" {
		p, err := config.LoadProfile(f.configPath)
		if err != nil {
			return nil, err
		}
		logging.NewComponentLogger(logging.CompConfig).Debug("profile loaded", "path", f.configPath)
		profile = p
	}

	var opts []image.EncoderOption

	switch {
	case set["target-addr"]:
		addr, err := config.ParseAddr(f.targetAddr)
		if err != nil {
			return nil, fmt.Errorf("target-addr: %w", err)
		}
		opts = append(opts, image.WithTargetAddr(addr))
	case profile.HasTargetAddr:
		opts = append(opts, image.WithTargetAddr(profile.TargetAddr))
	default:
		return nil, fmt.Errorf("%w: -target-addr is required when converting to UF2", errUsage)
	}

	switch {
	case set["family"]:
		family, err := format.ParseFamilyID(f.family)
		if err != nil {
			return nil, fmt.Errorf("family: %w", err)
		}
		opts = append(opts, image.WithFamilyID(family))
	case profile.HasFamily:
		opts = append(opts, image.WithFamilyID(profile.Family))
	}

	switch {
	case set["payload-size"]:
		opts = append(opts, image.WithPayloadSize(f.payloadSize))
	case profile.PayloadSize > 0:
		opts = append(opts, image.WithPayloadSize(profile.PayloadSize))
	}

	if f.notMainFlash {
		opts = append(opts, image.WithNotMainFlash())
	}

	if f.checksum || profile.Checksum {
		opts = append(opts, image.WithChecksum(md5.Sum)) //nolint:gosec
	}

	if semver := pick(f.semver, profile.Semver); semver != "" {
		opts = append(opts, image.WithSemver(semver))
	}
	if desc := pick(f.description, profile.Description); desc != "" {
		opts = append(opts, image.WithDescription(desc))
	}

	if f.pageSize != "" {
		size, err := config.ParseUint32(f.pageSize)
		if err != nil {
			return nil, fmt.Errorf("page-size: %w", err)
		}
		opts = append(opts, image.WithTargetPageSize(size))
	} else if profile.PageSize != 0 {
		opts = append(opts, image.WithTargetPageSize(profile.PageSize))
	}

	if f.deviceTypeID != "" {
		id, err := config.ParseUint32(f.deviceTypeID)
		if err != nil {
			return nil, fmt.Errorf("device-type-id: %w", err)
		}
		opts = append(opts, image.WithDeviceTypeID(id))
	} else if profile.HasDeviceType {
		opts = append(opts, image.WithDeviceTypeID(profile.DeviceTypeID))
	}

	logger.Debug("encoder configured", "options", len(opts))

	return opts, nil
}

func binToUF2(data []byte, output string, opts []image.EncoderOption, stdout io.Writer, logger *slog.Logger) error {
	enc, err := image.NewEncoder(opts...)
	if err != nil {
		return err
	}

	out, err := enc.Encode(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, out, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write output: %w", err)
	}

	family, _ := enc.FamilyID()
	logger.Info("wrote output", "path", output, "target_addr", fmt.Sprintf("0x%08x", enc.TargetAddr()), "family", family)

	fmt.Fprintf(stdout, "Written %d bytes into %d blocks.\n", len(data), len(out)/block.BlockSize)

	return nil
}

func uf2ToBin(data []byte, output string, f convertFlags, stdout io.Writer, logger *slog.Logger) error {
	dec, err := image.NewDecoder(
		image.WithStrictLength(f.strict),
		image.WithSequenceCheck(f.strict),
		image.WithSkipNotMainFlash(f.skipNotMain),
	)
	if err != nil {
		return err
	}

	if rem := len(data) % block.BlockSize; rem != 0 && !f.strict {
		logger.Warn("ignoring trailing bytes", "count", rem)
	}

	var binary []byte
	blocks := 0
	for b, err := range dec.All(data) {
		if err != nil {
			return err
		}
		binary = append(binary, b.Payload()...)
		blocks++
	}

	if err := os.WriteFile(output, binary, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote output", "path", output)

	fmt.Fprintf(stdout, "Read %d bytes from %d blocks.\n", len(binary), blocks)

	return nil
}

// readInput reads path and decompresses it when its name carries a
// compression suffix. It returns the contents and the path without that
// suffix.
func readInput(path string, logger *slog.Logger) ([]byte, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}

	kind, plain := compress.DetectCompression(path)
	if kind == format.CompressionNone {
		return raw, plain, nil
	}

	codec, err := compress.CreateCodec(kind)
	if err != nil {
		return nil, "", err
	}

	data, err := codec.Decompress(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decompress %s: %w", path, err)
	}
	logger.Info("decompressed input", "compression", kind, "compressed", len(raw), "size", len(data))

	return data, plain, nil
}

func isUF2(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".uf2")
}

// defaultOutput swaps the extension of input: .uf2 inputs become .bin and
// everything else becomes .uf2.
func defaultOutput(input string, toBinary bool) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if toBinary {
		return base + ".bin"
	}

	return base + ".uf2"
}

func pick(flagValue, profileValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return profileValue
}
