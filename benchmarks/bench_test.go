// Package benchmarks ports original_source/benches/bench.rs's two
// JSON<->PB case pairs to Go testing.B, adds a third "all defaults
// explicit" case exercising default-omission, and benchmarks the same
// shapes through encoding/json and google.golang.org/protobuf/encoding/
// protowire as comparison baselines — this module is never imported by
// the parent transproto module, only the reverse.
package benchmarks

import (
	"bytes"
	"encoding/json"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	tjson "github.com/vizee/transproto/json"
	"github.com/vizee/transproto/metadata"
	"github.com/vizee/transproto/proto"
	"github.com/vizee/transproto/trans"
)

const benchJSONCase0 = `{}`

var benchPBCase0 = []byte{}

const benchJSONCase1 = `{"a":"a","b":true,"c":1,"d":{"a":2,"b":"b"},"e":[3,4,5],"f":["f0","f1","f2"],"g":[{"a":6,"s":"s0"},{"a":7,"s":"s1"}]}`

var benchPBCase1 = []byte{
	10, 1, 97, 16, 1, 24, 1, 34, 5, 8, 2, 18, 1, 98, 42, 3, 3, 4, 5, 50, 2, 102, 48, 50, 2, 102,
	49, 50, 2, 102, 50, 58, 6, 8, 6, 18, 2, 115, 48, 58, 6, 8, 7, 18, 2, 115, 49,
}

const benchJSONCase2 = `{"a":"","b":false,"c":0,"d":{"a":0,"b":""},"e":[0,0,0],"f":["","",""],` +
	`"g":[{"a":0,"s":""},{"a":0,"s":""}]}`

func fooSchema() *metadata.Message {
	elem := metadata.NewMessage("pbmsg.Elem", []metadata.Field{
		{Name: "a", Tag: 1, Kind: metadata.KindInt32},
		{Name: "s", Tag: 2, Kind: metadata.KindString},
	}, true)
	embed := metadata.NewMessage("pbmsg.Foo.Embed", []metadata.Field{
		{Name: "a", Tag: 1, Kind: metadata.KindInt32},
		{Name: "b", Tag: 2, Kind: metadata.KindString},
	}, true)
	return metadata.NewMessage("pbmsg.Foo", []metadata.Field{
		{Name: "a", Tag: 1, Kind: metadata.KindString},
		{Name: "b", Tag: 2, Kind: metadata.KindBool},
		{Name: "c", Tag: 3, Kind: metadata.KindInt32},
		{Name: "d", Tag: 4, Kind: metadata.KindMessage, Msg: embed},
		{Name: "e", Tag: 5, Kind: metadata.KindInt32, Repeated: true},
		{Name: "f", Tag: 6, Kind: metadata.KindString, Repeated: true},
		{Name: "g", Tag: 7, Kind: metadata.KindMessage, Msg: elem, Repeated: true},
	}, true)
}

func benchmarkJSONToProto(b *testing.B, schema *metadata.Message, js string) {
	data := []byte(js)
	enc := proto.NewEncoder()
	it := tjson.NewIter(nil)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.Clear()
		it.Reset(data)
		if err := trans.TransJSONToProto(enc, it, schema); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkProtoToJSON(b *testing.B, schema *metadata.Message, pb []byte) {
	var buf []byte
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = buf[:0]
		dec := proto.NewDecoder(pb)
		var err error
		buf, err = trans.TransProtoToJSON(buf, dec, schema)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkJSONToProtoCase0Empty(b *testing.B) {
	benchmarkJSONToProto(b, fooSchema(), benchJSONCase0)
}

func BenchmarkJSONToProtoCase1Populated(b *testing.B) {
	benchmarkJSONToProto(b, fooSchema(), benchJSONCase1)
}

func BenchmarkJSONToProtoCase2AllDefaultsExplicit(b *testing.B) {
	benchmarkJSONToProto(b, fooSchema(), benchJSONCase2)
}

func BenchmarkProtoToJSONCase0Empty(b *testing.B) {
	benchmarkProtoToJSON(b, fooSchema(), benchPBCase0)
}

func BenchmarkProtoToJSONCase1Populated(b *testing.B) {
	benchmarkProtoToJSON(b, fooSchema(), benchPBCase1)
}

// fooGo is the plain Go struct shape encoding/json marshals/unmarshals
// against, as the stdlib-JSON comparison baseline for case1.
type fooGo struct {
	A string   `json:"a"`
	B bool     `json:"b"`
	C int32    `json:"c"`
	D fooEmbed `json:"d"`
	E []int32  `json:"e"`
	F []string `json:"f"`
	G []fooElem `json:"g"`
}

type fooEmbed struct {
	A int32  `json:"a"`
	B string `json:"b"`
}

type fooElem struct {
	A int32  `json:"a"`
	S string `json:"s"`
}

func BenchmarkStdlibJSONMarshalCase1(b *testing.B) {
	v := fooGo{
		A: "a", B: true, C: 1,
		D: fooEmbed{A: 2, B: "b"},
		E: []int32{3, 4, 5},
		F: []string{"f0", "f1", "f2"},
		G: []fooElem{{A: 6, S: "s0"}, {A: 7, S: "s1"}},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(&v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStdlibJSONUnmarshalCase1(b *testing.B) {
	data := []byte(benchJSONCase1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v fooGo
		if err := json.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkProtowireEncodeCase1 hand-encodes the same case1 shape using
// google.golang.org/protobuf/encoding/protowire's low-level append
// helpers, as the real-world-PB-library comparison point for the
// schema-driven trans.TransJSONToProto encode path above. It doesn't go
// through generated message types or reflection — protowire is the
// lowest layer google.golang.org/protobuf itself is built on, the same
// level trans's own proto package operates at.
func BenchmarkProtowireEncodeCase1(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf []byte
		buf = protowire.AppendTag(buf, 1, protowire.BytesType)
		buf = protowire.AppendString(buf, "a")
		buf = protowire.AppendTag(buf, 2, protowire.VarintType)
		buf = protowire.AppendVarint(buf, 1)
		buf = protowire.AppendTag(buf, 3, protowire.VarintType)
		buf = protowire.AppendVarint(buf, 1)

		var embed []byte
		embed = protowire.AppendTag(embed, 1, protowire.VarintType)
		embed = protowire.AppendVarint(embed, 2)
		embed = protowire.AppendTag(embed, 2, protowire.BytesType)
		embed = protowire.AppendString(embed, "b")
		buf = protowire.AppendTag(buf, 4, protowire.BytesType)
		buf = protowire.AppendBytes(buf, embed)

		var packed []byte
		packed = protowire.AppendVarint(packed, 3)
		packed = protowire.AppendVarint(packed, 4)
		packed = protowire.AppendVarint(packed, 5)
		buf = protowire.AppendTag(buf, 5, protowire.BytesType)
		buf = protowire.AppendBytes(buf, packed)

		for _, s := range []string{"f0", "f1", "f2"} {
			buf = protowire.AppendTag(buf, 6, protowire.BytesType)
			buf = protowire.AppendString(buf, s)
		}

		for _, elem := range [][2]any{{int32(6), "s0"}, {int32(7), "s1"}} {
			var e []byte
			e = protowire.AppendTag(e, 1, protowire.VarintType)
			e = protowire.AppendVarint(e, uint64(elem[0].(int32)))
			e = protowire.AppendTag(e, 2, protowire.BytesType)
			e = protowire.AppendString(e, elem[1].(string))
			buf = protowire.AppendTag(buf, 7, protowire.BytesType)
			buf = protowire.AppendBytes(buf, e)
		}

		if !bytes.Equal(buf, benchPBCase1) {
			b.Fatalf("protowire baseline diverged from trans output")
		}
	}
}
