package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/image"
	"github.com/arloliu/uftwo/internal/logging"
)

func runInfo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	strict := fs.Bool("strict", false, "Reject truncated files and broken block sequences")
	summary := fs.Bool("summary", false, "Print only the totals")
	logLevel := fs.String("log-level", "warn", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("%w: info needs INPUT", errUsage)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	logging.Init(level)
	logger := logging.NewComponentLogger(logging.CompInfo)

	data, _, err := readInput(fs.Arg(0), logger)
	if err != nil {
		return err
	}

	dec, err := image.NewDecoder(image.WithStrictLength(*strict), image.WithSequenceCheck(*strict))
	if err != nil {
		return err
	}

	var blocks, payload int
	for b, err := range dec.All(data) {
		if err != nil {
			return err
		}
		if !*summary {
			printBlock(stdout, &b)
		}
		blocks++
		payload += len(b.Payload())
	}

	fmt.Fprintf(stdout, "%d blocks, %d payload bytes\n", blocks, payload)

	return nil
}

func printBlock(w io.Writer, b *block.Block) {
	fmt.Fprintf(w, "block %d/%d addr=0x%08x size=%d flags=%s %s\n",
		b.BlockIndex, b.BlockCount, b.TargetAddr, b.PayloadSize, b.Flags, b.Aux())

	if sum, ok := b.Checksum(); ok {
		fmt.Fprintf(w, "  checksum start=0x%08x length=%d digest=%x\n", sum.Start, sum.Length, sum.Digest)
	}

	exts, ok := b.Extensions()
	if !ok {
		return
	}
	for ext := range exts.All() {
		fmt.Fprintf(w, "  %s\n", ext)
	}
	if err := exts.Err(); err != nil {
		fmt.Fprintf(w, "  %v\n", err)
	}
}
