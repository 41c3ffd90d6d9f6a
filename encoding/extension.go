package encoding

import (
	"fmt"

	"github.com/arloliu/uftwo/block"
	"github.com/arloliu/uftwo/endian"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
	"github.com/arloliu/uftwo/internal/pool"
)

// MaxExtensionPayload is the largest payload a single record can carry.
const MaxExtensionPayload = block.MaxExtensionSize - block.ExtensionHeaderSize

// ExtensionEncoder encodes a list of extension records into a pooled buffer.
//
// Note: The ExtensionEncoder is NOT thread-safe.
type ExtensionEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

// NewExtensionEncoder creates an empty encoder.
func NewExtensionEncoder() *ExtensionEncoder {
	return &ExtensionEncoder{
		buf:    pool.GetRecordBuffer(),
		engine: endian.GetLittleEndianEngine(),
	}
}

// Write appends one record.
//
// Returns:
//   - error: ErrInvalidExtensionTag if tag needs more than 24 bits,
//     ErrExtensionTooLarge if data is longer than MaxExtensionPayload
func (e *ExtensionEncoder) Write(tag format.ExtensionTag, data []byte) error {
	if tag > format.MaxExtensionTag {
		return fmt.Errorf("%w: 0x%x", errs.ErrInvalidExtensionTag, uint32(tag))
	}
	if len(data) > MaxExtensionPayload {
		return fmt.Errorf("%w: %s payload is %d bytes", errs.ErrExtensionTooLarge, tag, len(data))
	}

	length := block.ExtensionHeaderSize + len(data)
	padded := (length + block.ExtensionAlign - 1) / block.ExtensionAlign * block.ExtensionAlign

	rec := e.buf.Extend(padded)
	rec[0] = byte(length)
	endian.PutUint24(rec[1:block.ExtensionHeaderSize], uint32(tag))
	copy(rec[block.ExtensionHeaderSize:], data)
	clear(rec[length:])

	e.count++

	return nil
}

// WriteString appends a record holding a UTF-8 string, such as a semver or
// description.
func (e *ExtensionEncoder) WriteString(tag format.ExtensionTag, s string) error {
	return e.Write(tag, []byte(s))
}

// WriteUint32 appends a record holding a little-endian uint32, such as a
// target page size or device type id.
func (e *ExtensionEncoder) WriteUint32(tag format.ExtensionTag, v uint32) error {
	var b [4]byte
	e.engine.PutUint32(b[:], v)

	return e.Write(tag, b[:])
}

// Bytes returns the encoded list.
//
// The returned slice shares the underlying buffer with the encoder and is
// valid until the next Write or Reset.
func (e *ExtensionEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of records written.
func (e *ExtensionEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes, padding included.
func (e *ExtensionEncoder) Size() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used afterwards.
func (e *ExtensionEncoder) Reset() {
	if e.buf != nil {
		pool.PutRecordBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
