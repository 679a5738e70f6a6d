package trans

import (
	"github.com/vizee/transproto/metadata"
	"github.com/vizee/transproto/proto"
)

// wireType returns the wire type a scalar/structural kind is encoded
// with. Repeated fields use the element kind's wire type for packed
// scalars, or WireLenDelim uniformly for String/Bytes/Message elements
// (each occupies its own length-delimited record either way).
func wireType(kind metadata.Kind) uint32 {
	switch kind {
	case metadata.KindDouble, metadata.KindFixed64, metadata.KindSfixed64:
		return proto.Wire64Bit
	case metadata.KindFloat, metadata.KindFixed32, metadata.KindSfixed32:
		return proto.Wire32Bit
	case metadata.KindInt32, metadata.KindInt64, metadata.KindUint32,
		metadata.KindUint64, metadata.KindSint32, metadata.KindSint64,
		metadata.KindBool:
		return proto.WireVarint
	case metadata.KindString, metadata.KindBytes, metadata.KindMessage, metadata.KindMap:
		return proto.WireLenDelim
	}
	return proto.WireLenDelim
}

// fieldWireType is the wire type a non-repeated occurrence of field
// takes on the wire: packed repeated scalars still use their element's
// wire type per-item internally, but every repeated field's own field
// key (as it appears directly under a message) is always
// WireLenDelim, because on the wire repeated fields are either a
// single packed record (scalars) or one record per element
// (string/bytes/message) — either way, one length-delimited value.
func fieldWireType(f *metadata.Field) uint32 {
	if f.Repeated {
		return proto.WireLenDelim
	}
	return wireType(f.Kind)
}
