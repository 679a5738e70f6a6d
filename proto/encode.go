package proto

import (
	"bytes"
	"encoding/binary"
)

// Encoder appends tagged PB values to a buffer. The zero value is
// ready to use; Clear resets it for reuse across calls instead of
// allocating a fresh one, the same way trans's transcoders reuse one
// scratch Encoder per embedded message or map entry.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Clear empties the buffer for reuse.
func (e *Encoder) Clear() { e.buf.Reset() }

// IsEmpty reports whether nothing has been written yet.
func (e *Encoder) IsEmpty() bool { return e.buf.Len() == 0 }

// Bytes returns the accumulated buffer. The slice is only valid until
// the next call to Clear or a write method.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// WriteSlice appends raw bytes without any framing.
func (e *Encoder) WriteSlice(data []byte) {
	e.buf.Write(data)
}

// WriteVarint appends v as a base-128 varint, least-significant group
// first, continuation bit set on every group but the last.
func (e *Encoder) WriteVarint(v uint64) {
	for v >= 0x80 {
		e.buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	e.buf.WriteByte(byte(v))
}

// WriteZigzag zigzag-encodes v and appends it as a varint.
func (e *Encoder) WriteZigzag(v int64) {
	e.WriteVarint(Zigzag(v))
}

// EmitVarint appends a field key for tag with WireVarint, then v.
func (e *Encoder) EmitVarint(tag uint32, v uint64) {
	e.WriteVarint(ProtoKey(tag, WireVarint))
	e.WriteVarint(v)
}

// EmitZigzag appends a field key for tag with WireVarint, then the
// zigzag encoding of v.
func (e *Encoder) EmitZigzag(tag uint32, v int64) {
	e.WriteVarint(ProtoKey(tag, WireVarint))
	e.WriteZigzag(v)
}

// EmitLenDelim appends a field key for tag with WireLenDelim, the
// length of data as a varint, then data itself.
func (e *Encoder) EmitLenDelim(tag uint32, data []byte) {
	e.WriteVarint(ProtoKey(tag, WireLenDelim))
	e.WriteVarint(uint64(len(data)))
	e.buf.Write(data)
}

// EmitFixed32 appends a field key for tag with Wire32Bit, then v as
// 4 little-endian bytes.
func (e *Encoder) EmitFixed32(tag uint32, v uint32) {
	e.WriteVarint(ProtoKey(tag, Wire32Bit))
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// EmitFixed64 appends a field key for tag with Wire64Bit, then v as
// 8 little-endian bytes.
func (e *Encoder) EmitFixed64(tag uint32, v uint64) {
	e.WriteVarint(ProtoKey(tag, Wire64Bit))
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}
