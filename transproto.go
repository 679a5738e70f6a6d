package transproto

import (
	"io"

	"github.com/vizee/transproto/json"
	"github.com/vizee/transproto/metadata"
	"github.com/vizee/transproto/proto"
	"github.com/vizee/transproto/trans"
)

// Kind re-exports trans.Kind so callers can inspect a returned error's
// kind without importing the trans package directly.
type Kind = trans.Kind

const (
	UnexpectedEOF   = trans.UnexpectedEOF
	UnexpectedToken = trans.UnexpectedToken
	TypeMismatch    = trans.TypeMismatch
	InvalidWireType = trans.InvalidWireType
	IOErr           = trans.IOErr
	Wrapped         = trans.Wrapped
)

// Message is the compiled schema every EncodeSchemaDriven/
// DecodeSchemaDriven call is guided by. Build one with metadata.NewMessage
// and reuse it across calls.
type Message = metadata.Message

// EncodeSchemaDriven reads one complete JSON document from r and writes
// its PB wire encoding to w, guided by schema. It buffers the entirety
// of r before transcoding, since the tokenizer is not restartable and
// the wire encoder needs to see a whole value before it can decide
// whether, e.g., a repeated scalar field is empty.
func EncodeSchemaDriven(schema *Message, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return trans.WrapIO(err)
	}
	enc := proto.NewEncoder()
	if err := trans.TransJSONToProto(enc, json.NewIter(data), schema); err != nil {
		return err
	}
	if _, err := w.Write(enc.Bytes()); err != nil {
		return trans.WrapIO(err)
	}
	return nil
}

// DecodeSchemaDriven reads one complete PB message from r and writes
// its JSON text encoding to w, guided by schema.
func DecodeSchemaDriven(schema *Message, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return trans.WrapIO(err)
	}
	buf, err := trans.TransProtoToJSON(nil, proto.NewDecoder(data), schema)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return trans.WrapIO(err)
	}
	return nil
}
