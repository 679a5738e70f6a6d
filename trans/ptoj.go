package trans

import (
	"encoding/base64"
	"math"

	"github.com/vizee/transproto/json"
	"github.com/vizee/transproto/metadata"
	"github.com/vizee/transproto/proto"
)

// valueKind tags which field of a wireValue holds the decoded value.
type valueKind int

const (
	vNone valueKind = iota
	vU32
	vU64
	vBytes
)

// wireValue is whatever ReadVarint/Read32Bit/Read64Bit/ReadData handed
// back for one field occurrence, tagged by which wire type produced it.
type wireValue struct {
	kind  valueKind
	u32   uint32
	u64   uint64
	bytes []byte
}

func readWireValue(dec *proto.Decoder, wire uint32) (wireValue, error) {
	switch wire {
	case proto.WireVarint:
		v, err := dec.ReadVarint()
		if err != nil {
			return wireValue{}, errIO(err)
		}
		return wireValue{kind: vU64, u64: v}, nil
	case proto.Wire32Bit:
		v, err := dec.Read32Bit()
		if err != nil {
			return wireValue{}, errIO(err)
		}
		return wireValue{kind: vU32, u32: v}, nil
	case proto.Wire64Bit:
		v, err := dec.Read64Bit()
		if err != nil {
			return wireValue{}, errIO(err)
		}
		return wireValue{kind: vU64, u64: v}, nil
	case proto.WireLenDelim:
		v, err := dec.ReadData()
		if err != nil {
			return wireValue{}, errIO(err)
		}
		return wireValue{kind: vBytes, bytes: v}, nil
	default:
		return wireValue{}, errInvalidWireType()
	}
}

// TransProtoToJSON reads one complete PB message out of dec and
// appends its JSON text form to buf, guided by msg. Unknown tags are
// skipped (their value is still read off the wire to stay positioned
// correctly, just never written out).
func TransProtoToJSON(buf []byte, dec *proto.Decoder, msg *metadata.Message) ([]byte, error) {
	return transProtoMessage(buf, dec, msg)
}

// transProtoMessage is the streaming decode loop: it never buffers more
// than the field it's currently on. Because PB allows (and repeated
// string/bytes/message fields and maps use) multiple wire records to
// share one field tag, it tracks the "current" field across iterations and only
// writes the `"name":` key and opens a `[`/`{` bracket the first time
// a tag is seen; repClose remembers which bracket to close, and is
// closed either when a different tag arrives or at the end.
func transProtoMessage(buf []byte, dec *proto.Decoder, msg *metadata.Message) ([]byte, error) {
	var (
		curTag     uint32
		curKind    metadata.Kind
		curMsg     *metadata.Message
		curPacked  bool
		expectWire uint32
		more       bool
		repClose   byte
	)

	buf = append(buf, '{')
	for !dec.Eof() {
		tag, wire, err := dec.ReadKey()
		if err != nil {
			return buf, errIO(err)
		}
		val, err := readWireValue(dec, wire)
		if err != nil {
			return buf, err
		}

		if tag != curTag {
			field, ok := msg.GetByTag(tag)
			if !ok {
				continue
			}
			if repClose != 0 {
				buf = append(buf, repClose)
				repClose = 0
				more = true
			}

			curTag = tag
			curKind = field.Kind
			curMsg = field.Msg
			curPacked = false
			expectWire = fieldWireType(field)

			if !more {
				more = true
			} else {
				buf = append(buf, ',')
			}
			buf = append(buf, '"')
			buf = append(buf, field.Name...)
			buf = append(buf, '"', ':')

			if field.Repeated {
				switch field.Kind {
				case metadata.KindString, metadata.KindBytes, metadata.KindMessage:
					buf = append(buf, '[')
					repClose = ']'
					more = false
				default:
					curPacked = true
				}
			} else if field.Kind == metadata.KindMap {
				buf = append(buf, '{')
				repClose = '}'
				more = false
			}
		}

		if wire != expectWire {
			return buf, errInvalidWireType()
		}

		if repClose != 0 {
			if !more {
				more = true
			} else {
				buf = append(buf, ',')
			}
		}

		buf, err = transValue(buf, curKind, curPacked, curMsg, val)
		if err != nil {
			return buf, err
		}
	}

	if repClose != 0 {
		buf = append(buf, repClose)
	}
	buf = append(buf, '}')
	return buf, nil
}

// transValue formats one decoded value as JSON text. packed selects
// the "this occurrence is a whole packed-scalar-array record" path;
// every other kind (including individual repeated string/bytes/message
// elements, which arrive one record at a time) is handled by its
// ordinary singular-value case.
func transValue(buf []byte, kind metadata.Kind, packed bool, msg *metadata.Message, val wireValue) ([]byte, error) {
	if packed {
		return transRepeatedPacked(buf, proto.NewDecoder(val.bytes), kind)
	}
	switch kind {
	case metadata.KindMap:
		return transMapKV(buf, msg, proto.NewDecoder(val.bytes))
	case metadata.KindString:
		return writeJSONString(buf, val.bytes), nil
	case metadata.KindBytes:
		return writeJSONBytes(buf, val.bytes), nil
	case metadata.KindMessage:
		return transProtoMessage(buf, proto.NewDecoder(val.bytes), msg)
	case metadata.KindDouble:
		return appendFloat64(buf, math.Float64frombits(val.u64)), nil
	case metadata.KindFloat:
		return appendFloat32(buf, math.Float32frombits(val.u32)), nil
	case metadata.KindInt32:
		return appendInt(buf, int64(int32(val.u64))), nil
	case metadata.KindInt64, metadata.KindSfixed64:
		return appendInt(buf, int64(val.u64)), nil
	case metadata.KindUint32, metadata.KindUint64, metadata.KindFixed64:
		return appendUint(buf, val.u64), nil
	case metadata.KindSint32, metadata.KindSint64:
		return appendInt(buf, proto.Unzigzag(val.u64)), nil
	case metadata.KindFixed32:
		return appendUint(buf, uint64(val.u32)), nil
	case metadata.KindSfixed32:
		return appendInt(buf, int64(int32(val.u32))), nil
	case metadata.KindBool:
		return appendBool(buf, val.u64 != 0), nil
	default:
		return buf, errTypeMismatch()
	}
}

// transMapKV decodes one map entry sub-message (field 1 = key, field 2
// = value) read from its own length-delimited record. The key kind is
// re-validated at decode time rather than trusted from construction,
// since entry is supplied by the caller and may be malformed.
func transMapKV(buf []byte, entry *metadata.Message, dec *proto.Decoder) ([]byte, error) {
	keyField, _ := entry.GetByTag(1)
	valField, ok := entry.GetByTag(2)
	if keyField == nil || keyField.Kind != metadata.KindString {
		return buf, errWrapf("key type must be string")
	}
	if !ok {
		return buf, errWrapf("map entry schema missing value field")
	}
	vWire := fieldWireType(valField)

	var kVal, vVal wireValue
	haveKey, haveVal := false, false
	for !dec.Eof() {
		tag, wire, err := dec.ReadKey()
		if err != nil {
			return buf, errIO(err)
		}
		val, err := readWireValue(dec, wire)
		if err != nil {
			return buf, err
		}
		switch tag {
		case 1:
			if wire != proto.WireLenDelim {
				return buf, errInvalidWireType()
			}
			kVal = val
			haveKey = true
		case 2:
			if wire != vWire {
				return buf, errInvalidWireType()
			}
			vVal = val
			haveVal = true
		}
	}

	if haveKey {
		buf = writeJSONString(buf, kVal.bytes)
	} else {
		buf = append(buf, '"', '"')
	}
	buf = append(buf, ':')
	if !haveVal {
		return transDefaultValue(buf, valField.Kind), nil
	}
	return transValue(buf, valField.Kind, false, valField.Msg, vVal)
}

// transRepeatedPacked reads scalars from dec until exhausted, writing
// them as a comma-joined JSON array. It's only ever called on the
// sub-decoder over a single packed-repeated wire record.
func transRepeatedPacked(buf []byte, dec *proto.Decoder, kind metadata.Kind) ([]byte, error) {
	buf = append(buf, '[')
	more := false
	for !dec.Eof() {
		if !more {
			more = true
		} else {
			buf = append(buf, ',')
		}
		var err error
		buf, err = appendPackedElem(buf, dec, kind)
		if err != nil {
			return buf, err
		}
	}
	buf = append(buf, ']')
	return buf, nil
}

func appendPackedElem(buf []byte, dec *proto.Decoder, kind metadata.Kind) ([]byte, error) {
	switch kind {
	case metadata.KindDouble:
		v, err := dec.Read64Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendFloat64(buf, math.Float64frombits(v)), nil
	case metadata.KindFloat:
		v, err := dec.Read32Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendFloat32(buf, math.Float32frombits(v)), nil
	case metadata.KindInt32:
		v, err := dec.ReadVarint()
		if err != nil {
			return buf, errIO(err)
		}
		return appendInt(buf, int64(int32(v))), nil
	case metadata.KindInt64:
		v, err := dec.ReadVarint()
		if err != nil {
			return buf, errIO(err)
		}
		return appendInt(buf, int64(v)), nil
	case metadata.KindUint32, metadata.KindUint64:
		v, err := dec.ReadVarint()
		if err != nil {
			return buf, errIO(err)
		}
		return appendUint(buf, v), nil
	case metadata.KindSint32, metadata.KindSint64:
		v, err := dec.ReadZigzag()
		if err != nil {
			return buf, errIO(err)
		}
		return appendInt(buf, v), nil
	case metadata.KindFixed32:
		v, err := dec.Read32Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendUint(buf, uint64(v)), nil
	case metadata.KindFixed64:
		v, err := dec.Read64Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendUint(buf, v), nil
	case metadata.KindSfixed32:
		v, err := dec.Read32Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendInt(buf, int64(int32(v))), nil
	case metadata.KindSfixed64:
		v, err := dec.Read64Bit()
		if err != nil {
			return buf, errIO(err)
		}
		return appendInt(buf, int64(v)), nil
	case metadata.KindBool:
		v, err := dec.ReadVarint()
		if err != nil {
			return buf, errIO(err)
		}
		return appendBool(buf, v != 0), nil
	default:
		return buf, errWrapf("unexpected packed element kind")
	}
}

func transDefaultValue(buf []byte, kind metadata.Kind) []byte {
	switch kind {
	case metadata.KindBool:
		return append(buf, "false"...)
	case metadata.KindString, metadata.KindBytes:
		return append(buf, '"', '"')
	case metadata.KindMessage, metadata.KindMap:
		return append(buf, "null"...)
	default:
		return append(buf, '0')
	}
}

func writeJSONString(buf []byte, data []byte) []byte {
	buf = append(buf, '"')
	buf = json.Escape(data, buf)
	buf = append(buf, '"')
	return buf
}

func writeJSONBytes(buf []byte, data []byte) []byte {
	buf = append(buf, '"')
	start := len(buf)
	n := base64.StdEncoding.EncodedLen(len(data))
	buf = append(buf, make([]byte, n)...)
	base64.StdEncoding.Encode(buf[start:], data)
	buf = append(buf, '"')
	return buf
}
