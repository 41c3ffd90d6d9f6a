package image

import "github.com/arloliu/uftwo/internal/options"

// DecoderConfig selects how strictly a Decoder treats its input.
type DecoderConfig struct {
	strictLength     bool
	sequenceCheck    bool
	skipNotMainFlash bool
}

// NewDecoderConfig creates the lenient default configuration: a trailing
// partial record is ignored and the block sequence is not checked.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{}
}

// DecoderOption is a functional option for configuring a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithStrictLength rejects input whose length is not a multiple of 512 with
// ErrTruncatedBlock instead of ignoring the trailing bytes.
func WithStrictLength(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.strictLength = enabled
	})
}

// WithSequenceCheck verifies that all blocks agree on the block count, that
// every index is below the count and appears once, and that no index is
// missing. Blocks repeated verbatim are decoded once.
func WithSequenceCheck(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.sequenceCheck = enabled
	})
}

// WithSkipNotMainFlash leaves blocks flagged NotMainFlash out of the decoded
// image. They still take part in the sequence check.
func WithSkipNotMainFlash(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.skipNotMainFlash = enabled
	})
}
