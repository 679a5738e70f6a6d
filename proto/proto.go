// Package proto implements the wire-level varint/zigzag/fixed-width
// codec that the PB side of trans is built on: an Encoder that appends
// tagged values to a growable buffer, and a Decoder that reads them
// back out of a borrowed byte slice.
package proto

// Wire types, matching the protobuf wire format.
const (
	WireVarint   = 0
	Wire64Bit    = 1
	WireLenDelim = 2
	Wire32Bit    = 5
)

// ProtoKey packs a field tag and wire type into the varint-encoded key
// that precedes every field's value on the wire.
func ProtoKey(tag, wire uint32) uint64 {
	return uint64(tag)<<3 | uint64(wire)
}

// SplitKey unpacks a key read off the wire into its tag and wire type.
func SplitKey(key uint64) (tag, wire uint32) {
	return uint32(key >> 3), uint32(key & 7)
}

// Zigzag maps a signed integer to an unsigned one so that small
// magnitude values (positive or negative) encode to small varints.
func Zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// Unzigzag reverses Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
