// Package endian provides the byte order engine used to read and write UF2 blocks.
//
// UF2 is a little-endian format on every host. The EndianEngine interface
// combines binary.ByteOrder and binary.AppendByteOrder so a block can be either
// written into a fixed 512-byte array or appended to a growing output buffer
// with the same engine:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, block.TargetAddr)
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used for every UF2 field.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint24 decodes a 24-bit little-endian value, zero-extended to 32 bits.
//
// UF2 extension tags are stored in three bytes, which encoding/binary has no helper for.
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// PutUint24 encodes the low 24 bits of v into b in little-endian order.
func PutUint24(b []byte, v uint32) {
	_ = b[2]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
