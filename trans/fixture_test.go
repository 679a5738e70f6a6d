package trans

import "github.com/vizee/transproto/metadata"

// fooFixture builds the pbmsg.Foo/pbmsg.Foo.Embed/pbmsg.Elem schema
// shared by every test in this package (JSON->PB and PB->JSON alike),
// rather than the two nearly-identical copies original_source's
// src/trans.rs test module and benches/bench.rs each built
// independently.
func fooFixture() *metadata.Message {
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

// mapFixture builds a message with a single map<string,int32> field,
// using the same synthetic two-field entry-message shape protoc
// compiles map fields to (key@1, value@2).
func mapFixture() *metadata.Message {
	entry := metadata.NewMessage("pbmsg.WithMap.MEntry", []metadata.Field{
		{Name: "key", Tag: 1, Kind: metadata.KindString},
		{Name: "value", Tag: 2, Kind: metadata.KindInt32},
	}, false)
	return metadata.NewMessage("pbmsg.WithMap", []metadata.Field{
		{Name: "m", Tag: 1, Kind: metadata.KindMap, Msg: entry},
	}, true)
}
