// Package encoding builds the extension tag lists stored in the padding of UF2 blocks.
//
// An extension record is laid out as:
//
//	byte 0      total record length, header included (4..255)
//	bytes 1-3   24-bit little-endian tag
//	bytes 4..   tag payload
//
// Records are padded with zeros to the next 4-byte boundary; a zero length
// byte ends the list. The encoded list is copied into a block with
// block.(*Block).SetExtensions and read back with block.(*Block).Extensions.
package encoding
