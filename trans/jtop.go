package trans

import (
	"encoding/base64"
	"math"
	"strconv"

	"github.com/vizee/transproto/json"
	"github.com/vizee/transproto/metadata"
	"github.com/vizee/transproto/proto"
)

// TransJSONToProto reads one complete JSON document out of it and
// writes its PB wire encoding to enc, guided by msg. it must start
// positioned before the document's leading '{'.
func TransJSONToProto(enc *proto.Encoder, it *json.Iter, msg *metadata.Message) error {
	tok, ok := it.Next()
	if !ok {
		return errUnexpectedEOF()
	}
	if tok.Kind != json.ObjectOpen {
		return errUnexpectedToken()
	}
	return transMessage(enc, it, msg)
}

// transMessage reads "name":value pairs until the matching
// ObjectClose, looking each name up in msg and dispatching to
// transField; unknown field names have their value skipped rather
// than rejected, the same tolerant-of-unknown-fields posture PB's own
// wire format has for unknown tags.
func transMessage(enc *proto.Encoder, it *json.Iter, msg *metadata.Message) error {
	var key []byte
	haveKey := false
	for {
		tok, ok := it.Next()
		if !ok {
			return errUnexpectedEOF()
		}
		switch {
		case tok.Kind == json.ObjectClose && !haveKey:
			return nil
		case tok.Kind == json.Comma || tok.Kind == json.Colon:
			continue
		case haveKey:
			name := key[1 : len(key)-1]
			if field, ok := msg.GetByName(string(name)); ok {
				if err := transField(enc, it, field, tok); err != nil {
					return err
				}
			} else if err := skipValue(it, tok); err != nil {
				return err
			}
			haveKey = false
		case tok.Kind == json.String:
			key = tok.Slice
			haveKey = true
		default:
			return errUnexpectedToken()
		}
	}
}

// skipValue discards one JSON value the caller has no field for,
// balancing nested objects/arrays without interpreting their content.
func skipValue(it *json.Iter, tok json.Token) error {
	switch tok.Kind {
	case json.Null, json.True, json.False, json.Number, json.String:
		return nil
	case json.ObjectOpen:
		for {
			tok, ok := it.Next()
			if !ok {
				return errUnexpectedEOF()
			}
			switch tok.Kind {
			case json.ObjectClose:
				return nil
			case json.Comma, json.Colon:
				continue
			default:
				if err := skipValue(it, tok); err != nil {
					return err
				}
			}
		}
	case json.ArrayOpen:
		for {
			tok, ok := it.Next()
			if !ok {
				return errUnexpectedEOF()
			}
			switch tok.Kind {
			case json.ArrayClose:
				return nil
			case json.Comma:
				continue
			default:
				if err := skipValue(it, tok); err != nil {
					return err
				}
			}
		}
	default:
		return errUnexpectedToken()
	}
}

// transField dispatches one value token against field's kind. Null is
// accepted as a no-op for Bytes, Message, Map, and any repeated field
// (an empty/absent collection), but rejected for a singular scalar or
// String field — there's no wire representation of "explicitly null"
// for those, so it's treated as a schema mismatch instead of silently
// doing nothing.
func transField(enc *proto.Encoder, it *json.Iter, field *metadata.Field, lead json.Token) error {
	switch lead.Kind {
	case json.String:
		if field.Repeated {
			return errTypeMismatch()
		}
		switch field.Kind {
		case metadata.KindString:
			return transString(enc, lead.Slice, field.Tag)
		case metadata.KindBytes:
			return transBytes(enc, lead.Slice, field.Tag)
		default:
			return errTypeMismatch()
		}
	case json.Number:
		if field.Repeated {
			return errTypeMismatch()
		}
		return transNumeric(enc, field.Kind, field.Tag, lead.Slice)
	case json.True, json.False:
		if field.Repeated {
			return errTypeMismatch()
		}
		if field.Kind != metadata.KindBool {
			return errTypeMismatch()
		}
		if lead.Kind == json.True {
			enc.EmitVarint(field.Tag, 1)
		}
		return nil
	case json.Null:
		if field.Repeated {
			return nil
		}
		switch field.Kind {
		case metadata.KindBytes, metadata.KindMessage, metadata.KindMap:
			return nil
		default:
			return errTypeMismatch()
		}
	case json.ObjectOpen:
		if field.Repeated {
			return errTypeMismatch()
		}
		switch field.Kind {
		case metadata.KindMessage:
			return transEmbeddedMessage(enc, it, field.Tag, field.Msg)
		case metadata.KindMap:
			return transMap(enc, it, field.Tag, field.Msg)
		default:
			return errTypeMismatch()
		}
	case json.ArrayOpen:
		if !field.Repeated {
			return errTypeMismatch()
		}
		return transRepeated(enc, it, field.Tag, field.Kind, field.Msg)
	default:
		return errUnexpectedToken()
	}
}

func transString(enc *proto.Encoder, s []byte, tag uint32) error {
	z, err := json.Unescape(s[1:len(s)-1], make([]byte, 0, len(s)-2))
	if err != nil {
		return errWrap(err)
	}
	if len(z) != 0 {
		enc.EmitLenDelim(tag, z)
	}
	return nil
}

func transBytes(enc *proto.Encoder, s []byte, tag uint32) error {
	inner := s[1 : len(s)-1]
	z := make([]byte, base64.StdEncoding.DecodedLen(len(inner)))
	n, err := base64.StdEncoding.Decode(z, inner)
	if err != nil {
		return errWrap(err)
	}
	z = z[:n]
	if len(z) != 0 {
		enc.EmitLenDelim(tag, z)
	}
	return nil
}

func trimQuotes(s []byte) []byte {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// transNumeric parses s as the scalar kind's text form and emits it,
// omitting the field entirely when the parsed value is the zero value
// (proto3 singular-field default omission).
func transNumeric(enc *proto.Encoder, kind metadata.Kind, tag uint32, s []byte) error {
	str := string(s)
	switch kind {
	case metadata.KindDouble:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed64(tag, math.Float64bits(v))
		}
	case metadata.KindFloat:
		v, err := strconv.ParseFloat(str, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed32(tag, math.Float32bits(float32(v)))
		}
	case metadata.KindInt32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitVarint(tag, uint64(v))
		}
	case metadata.KindInt64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitVarint(tag, uint64(v))
		}
	case metadata.KindUint32:
		v, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitVarint(tag, v)
		}
	case metadata.KindUint64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitVarint(tag, v)
		}
	case metadata.KindSint32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitZigzag(tag, v)
		}
	case metadata.KindSint64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitZigzag(tag, v)
		}
	case metadata.KindFixed32:
		v, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed32(tag, uint32(v))
		}
	case metadata.KindFixed64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed64(tag, v)
		}
	case metadata.KindSfixed32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed32(tag, uint32(int32(v)))
		}
	case metadata.KindSfixed64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		if v != 0 {
			enc.EmitFixed64(tag, uint64(v))
		}
	default:
		return errTypeMismatch()
	}
	return nil
}

func transEmbeddedMessage(enc *proto.Encoder, it *json.Iter, tag uint32, msg *metadata.Message) error {
	embedded := proto.NewEncoder()
	if err := transMessage(embedded, it, msg); err != nil {
		return err
	}
	enc.EmitLenDelim(tag, embedded.Bytes())
	return nil
}

// transMap reads "key":value pairs until ObjectClose, encoding each
// pair as its own two-field (tag 1 = key, tag 2 = value) entry
// message, the same shape protoc compiles map<K,V> fields to.
func transMap(enc *proto.Encoder, it *json.Iter, tag uint32, entry *metadata.Message) error {
	keyField, ok := entry.GetByTag(1)
	if !ok {
		return errWrapf("map entry schema missing key field")
	}
	valField, ok := entry.GetByTag(2)
	if !ok {
		return errWrapf("map entry schema missing value field")
	}

	scratch := proto.NewEncoder()
	var key json.Token
	haveKey := false
	for {
		tok, ok := it.Next()
		if !ok {
			return errUnexpectedEOF()
		}
		switch {
		case tok.Kind == json.ObjectClose && !haveKey:
			return nil
		case tok.Kind == json.Comma || tok.Kind == json.Colon:
			continue
		case haveKey:
			scratch.Clear()
			if err := transField(scratch, it, keyField, key); err != nil {
				return err
			}
			if err := transField(scratch, it, valField, tok); err != nil {
				return err
			}
			if !scratch.IsEmpty() {
				enc.EmitLenDelim(tag, scratch.Bytes())
			}
			haveKey = false
		case tok.Kind == json.String:
			key = tok
			haveKey = true
		default:
			return errUnexpectedToken()
		}
	}
}

func transRepeatedImpl(it *json.Iter, f func(tok json.Token) error) error {
	for {
		tok, ok := it.Next()
		if !ok {
			return errUnexpectedEOF()
		}
		switch tok.Kind {
		case json.Comma:
			continue
		case json.ArrayClose:
			return nil
		default:
			if err := f(tok); err != nil {
				return err
			}
		}
	}
}

// transRepeated reads array elements until ArrayClose. Message,
// String, and Bytes elements each become their own length-delimited
// record (so an empty string/submessage element still appears in the
// wire form); every other scalar kind is packed into a single
// length-delimited record holding the raw values back to back, which
// is omitted entirely if the array had no elements.
func transRepeated(enc *proto.Encoder, it *json.Iter, tag uint32, kind metadata.Kind, elemMsg *metadata.Message) error {
	switch kind {
	case metadata.KindMessage:
		z := proto.NewEncoder()
		return transRepeatedImpl(it, func(tok json.Token) error {
			if tok.Kind != json.ObjectOpen {
				return errUnexpectedToken()
			}
			z.Clear()
			if err := transMessage(z, it, elemMsg); err != nil {
				return err
			}
			enc.EmitLenDelim(tag, z.Bytes())
			return nil
		})
	case metadata.KindString:
		return transRepeatedImpl(it, func(tok json.Token) error {
			if tok.Kind != json.String {
				return errUnexpectedToken()
			}
			z, err := json.Unescape(trimQuotes(tok.Slice), nil)
			if err != nil {
				return errWrap(err)
			}
			enc.EmitLenDelim(tag, z)
			return nil
		})
	case metadata.KindBytes:
		return transRepeatedImpl(it, func(tok json.Token) error {
			if tok.Kind != json.String {
				return errUnexpectedToken()
			}
			inner := trimQuotes(tok.Slice)
			z := make([]byte, base64.StdEncoding.DecodedLen(len(inner)))
			n, err := base64.StdEncoding.Decode(z, inner)
			if err != nil {
				return errWrap(err)
			}
			enc.EmitLenDelim(tag, z[:n])
			return nil
		})
	default:
		packed := proto.NewEncoder()
		if err := transRepeatedImpl(it, func(tok json.Token) error {
			return writeElem(packed, kind, tok)
		}); err != nil {
			return err
		}
		if !packed.IsEmpty() {
			enc.EmitLenDelim(tag, packed.Bytes())
		}
		return nil
	}
}

// writeElem writes one packed-repeated scalar's raw value, with no
// field key — packed repeated encoding is just the values
// concatenated back to back.
func writeElem(packed *proto.Encoder, kind metadata.Kind, tok json.Token) error {
	switch kind {
	case metadata.KindBool:
		if tok.Kind != json.True && tok.Kind != json.False {
			return errUnexpectedToken()
		}
		if tok.Kind == json.True {
			packed.WriteVarint(1)
		} else {
			packed.WriteVarint(0)
		}
		return nil
	}
	if tok.Kind != json.Number {
		return errUnexpectedToken()
	}
	str := string(tok.Slice)
	switch kind {
	case metadata.KindDouble:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return errWrap(err)
		}
		var b [8]byte
		putLE64(b[:], math.Float64bits(v))
		packed.WriteSlice(b[:])
	case metadata.KindFloat:
		v, err := strconv.ParseFloat(str, 32)
		if err != nil {
			return errWrap(err)
		}
		var b [4]byte
		putLE32(b[:], math.Float32bits(float32(v)))
		packed.WriteSlice(b[:])
	case metadata.KindInt32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteVarint(uint64(v))
	case metadata.KindInt64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteVarint(uint64(v))
	case metadata.KindUint32:
		v, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteVarint(v)
	case metadata.KindUint64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteVarint(v)
	case metadata.KindSint32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteZigzag(v)
	case metadata.KindSint64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		packed.WriteZigzag(v)
	case metadata.KindFixed32:
		v, err := strconv.ParseUint(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		var b [4]byte
		putLE32(b[:], uint32(v))
		packed.WriteSlice(b[:])
	case metadata.KindFixed64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		var b [8]byte
		putLE64(b[:], v)
		packed.WriteSlice(b[:])
	case metadata.KindSfixed32:
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errWrap(err)
		}
		var b [4]byte
		putLE32(b[:], uint32(int32(v)))
		packed.WriteSlice(b[:])
	case metadata.KindSfixed64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return errWrap(err)
		}
		var b [8]byte
		putLE64(b[:], uint64(v))
		packed.WriteSlice(b[:])
	default:
		return errTypeMismatch()
	}
	return nil
}
