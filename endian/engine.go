// Package endian provides the little-endian packing engine used by the YABE
// writer and reader for every multi-byte field in the wire format.
//
// The format itself is not negotiable: every multi-byte payload in YABE is
// little-endian, regardless of host byte order (see the "Endianness" design
// note in SPEC_FULL.md). What this package buys is a single abstraction over
// encoding/binary's ByteOrder and AppendByteOrder interfaces so the core can
// be written once against an EndianEngine value instead of scattering
// encoding/binary calls directly through writer.go and reader.go.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian satisfies it already.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine YABE's wire format always uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
