package trans

import "strconv"

// appendInt, appendUint, appendFloat, and appendBool format scalars
// directly into a growing byte buffer with strconv's Append* family,
// the same reason the Rust source reaches for itoa/dtoa buffers in its
// own trans/append.rs instead of going through Display formatting in
// the per-scalar hot path.

func appendInt(buf []byte, v int64) []byte {
	return strconv.AppendInt(buf, v, 10)
}

func appendUint(buf []byte, v uint64) []byte {
	return strconv.AppendUint(buf, v, 10)
}

func appendFloat32(buf []byte, v float32) []byte {
	return strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
}

func appendFloat64(buf []byte, v float64) []byte {
	return strconv.AppendFloat(buf, v, 'g', -1, 64)
}

func appendBool(buf []byte, v bool) []byte {
	return strconv.AppendBool(buf, v)
}
