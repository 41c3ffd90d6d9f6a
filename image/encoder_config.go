package image

import (
	"fmt"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/encoding"
	"github.com/arloliu/uftwo/endian"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
	"github.com/arloliu/uftwo/internal/options"
)

// DefaultPayloadSize is the number of image bytes carried by each block
// unless WithPayloadSize says otherwise.
const DefaultPayloadSize = 256

// ChecksumFunc computes the 16-byte digest stored in a block's checksum record
// from the chunk of image the block carries.
type ChecksumFunc func(chunk []byte) [16]byte

type extensionRecord struct {
	tag  format.ExtensionTag
	data []byte
}

// EncoderConfig holds the settings shared by every block an Encoder produces.
type EncoderConfig struct {
	targetAddr   uint32
	payloadSize  int
	family       format.FamilyID
	hasFamily    bool
	notMainFlash bool
	checksum     ChecksumFunc
	extensions   []extensionRecord

	// extension tag list encoded once at construction
	records []byte
}

// NewEncoderConfig creates a configuration with the default payload size,
// target address 0 and no optional block content.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		payloadSize: DefaultPayloadSize,
	}
}

// TargetAddr returns the address of the first image byte.
func (c *EncoderConfig) TargetAddr() uint32 {
	return c.targetAddr
}

// PayloadSize returns the number of image bytes per block.
func (c *EncoderConfig) PayloadSize() int {
	return c.payloadSize
}

// FamilyID returns the configured family and whether one is set.
func (c *EncoderConfig) FamilyID() (format.FamilyID, bool) {
	return c.family, c.hasFamily
}

// ExtensionRecords returns the encoded extension tag list stored in every
// block, or nil when no extension is configured.
func (c *EncoderConfig) ExtensionRecords() []byte {
	return c.records
}

// validate checks that the configured block content fits in 476 bytes and
// encodes the extension list.
func (c *EncoderConfig) validate() error {
	payloadLimit := block.MaxPayloadSize
	if c.checksum != nil {
		payloadLimit -= block.ChecksumSize
	}
	if c.payloadSize > payloadLimit {
		return fmt.Errorf("%w: %d bytes leaves no room for the checksum record, max %d",
			errs.ErrInvalidPayloadSize, c.payloadSize, payloadLimit)
	}

	if len(c.extensions) == 0 {
		c.records = nil
		return nil
	}

	enc := encoding.NewExtensionEncoder()
	defer enc.Reset()

	for _, ext := range c.extensions {
		if err := enc.Write(ext.tag, ext.data); err != nil {
			return err
		}
	}

	// Full-size chunks leave the least room, so checking against them
	// covers the shorter last block too.
	room := block.MaxPayloadSize - block.ExtensionRegionStart(uint32(c.payloadSize)) //nolint:gosec
	if c.checksum != nil {
		room -= block.ChecksumSize
	}
	if enc.Size() > room {
		return fmt.Errorf("%w: %d bytes of extensions, %d available with %d-byte payloads",
			errs.ErrExtensionOverflow, enc.Size(), max(room, 0), c.payloadSize)
	}

	c.records = append([]byte(nil), enc.Bytes()...)

	return nil
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithTargetAddr sets the address the first image byte is written to.
// Block i is addressed at addr + i*payloadSize. Default is 0.
func WithTargetAddr(addr uint32) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.targetAddr = addr
	})
}

// WithPayloadSize sets the number of image bytes per block, 1 to 476.
// Default is DefaultPayloadSize. With WithChecksum the maximum drops to 452.
func WithPayloadSize(size int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if size < 1 || size > block.MaxPayloadSize {
			return fmt.Errorf("%w: %d, must be between 1 and %d", errs.ErrInvalidPayloadSize, size, block.MaxPayloadSize)
		}
		c.payloadSize = size

		return nil
	})
}

// WithFamilyID stores id in every block and sets the family ID flag.
func WithFamilyID(id format.FamilyID) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.family = id
		c.hasFamily = true
	})
}

// WithNotMainFlash marks every block as not destined for main flash, so
// bootloaders skip writing it.
func WithNotMainFlash() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.notMainFlash = true
	})
}

// WithChecksum adds a checksum record to every block. fn receives the chunk
// carried by the block; the record's start and length describe that chunk.
func WithChecksum(fn ChecksumFunc) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if fn == nil {
			return errs.ErrNilChecksumFunc
		}
		c.checksum = fn

		return nil
	})
}

// WithExtension appends an extension record to the tag list written into
// every block. Records keep the order of the options.
func WithExtension(tag format.ExtensionTag, data []byte) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.extensions = append(c.extensions, extensionRecord{tag: tag, data: append([]byte(nil), data...)})
	})
}

// WithSemver adds a semantic version extension record.
func WithSemver(version string) EncoderOption {
	return WithExtension(format.TagSemverString, []byte(version))
}

// WithDescription adds a device description extension record.
func WithDescription(description string) EncoderOption {
	return WithExtension(format.TagDescriptionString, []byte(description))
}

// WithTargetPageSize adds a target page size extension record.
func WithTargetPageSize(size uint32) EncoderOption {
	return WithExtension(format.TagTargetPageSize, le32(size))
}

// WithDeviceTypeID adds a device type identifier extension record.
func WithDeviceTypeID(id uint32) EncoderOption {
	return WithExtension(format.TagDeviceTypeID, le32(id))
}

func le32(v uint32) []byte {
	return endian.GetLittleEndianEngine().AppendUint32(nil, v)
}
