package block

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/arloliu/uftwo/endian"
	"github.com/arloliu/uftwo/errs"
	"github.com/arloliu/uftwo/format"
)

// Extension is one tagged record from a block's extension region.
//
// Data aliases the block it was read from. Interpreting it (UTF-8 text,
// integers, digests) is up to the caller.
type Extension struct {
	Tag  format.ExtensionTag
	Data []byte
}

// String renders the record for diagnostics: text tags as quoted strings,
// 4-byte integer tags as numbers, anything else as hex.
func (x Extension) String() string {
	switch x.Tag {
	case format.TagSemverString, format.TagDescriptionString:
		if utf8.Valid(x.Data) {
			return fmt.Sprintf("%s %q", x.Tag, x.Data)
		}
	case format.TagTargetPageSize, format.TagDeviceTypeID:
		if len(x.Data) == 4 {
			return fmt.Sprintf("%s 0x%x", x.Tag, endian.GetLittleEndianEngine().Uint32(x.Data))
		}
	}

	return fmt.Sprintf("%s %x", x.Tag, x.Data)
}

// Extensions walks the extension records in a region of a block.
//
// The walk is lazy and forward-only: each call to Next decodes one record.
// It stops at the first record whose length byte is below 4, which is how
// zero padding terminates the list. A record that claims to extend past the
// end of the region also stops the walk, and Err then reports
// ErrMalformedExtension; such a record is never returned.
//
// Extensions is NOT restartable; ask the block for a new cursor instead.
type Extensions struct {
	data   []byte
	offset int
	done   bool
	err    error
}

// NewExtensions creates a cursor positioned at the start of region.
func NewExtensions(region []byte) *Extensions {
	return &Extensions{data: region}
}

// Next returns the next record, or false when there are no more.
func (e *Extensions) Next() (Extension, bool) {
	if e.done {
		return Extension{}, false
	}

	p := e.offset
	if p >= len(e.data) {
		return e.finish(nil)
	}

	length := int(e.data[p])
	if length < ExtensionHeaderSize {
		return e.finish(nil)
	}

	if p+length > len(e.data) {
		return e.finish(fmt.Errorf("%w: record at offset %d claims %d bytes, %d left",
			errs.ErrMalformedExtension, p, length, len(e.data)-p))
	}

	ext := Extension{
		Tag:  format.ExtensionTag(endian.Uint24(e.data[p+1 : p+ExtensionHeaderSize])),
		Data: e.data[p+ExtensionHeaderSize : p+length],
	}
	e.offset = alignUp(p+length, ExtensionAlign)

	return ext, true
}

// All returns an iterator over the remaining records.
//
// Iterating consumes the cursor; check Err after the loop.
func (e *Extensions) All() iter.Seq[Extension] {
	return func(yield func(Extension) bool) {
		for {
			ext, ok := e.Next()
			if !ok || !yield(ext) {
				return
			}
		}
	}
}

// Err returns ErrMalformedExtension, wrapped with the offending offset, if
// the walk stopped at a record running past the region.
func (e *Extensions) Err() error {
	return e.err
}

func (e *Extensions) finish(err error) (Extension, bool) {
	e.done = true
	e.err = err

	return Extension{}, false
}
