/*
Package transproto transcodes between protobuf-style wire bytes and
JSON text, driven entirely by a runtime Message schema — no generated
code, no intermediate object graph.

 PB wire format (as produced/consumed by package proto):

 message  ::= field*
 field    ::= key value
 key      ::= varint                 (tag<<3)|wire
 value    ::= varint                 wire == 0
            | fixed64                wire == 1
            | len_prefixed           wire == 2
            | fixed32                wire == 5
 len_prefixed ::= varint_len byte*len

 Repeated scalar fields are packed: one len_prefixed record holding
 every element's raw encoding back to back, no per-element key.
 Repeated string/bytes/message fields are not packed: one key+value
 pair per element. A map<K,V> field is modeled as a repeated
 len_prefixed field whose payload is itself a two-field message
 (key at tag 1, value at tag 2) — exactly what protoc compiles
 map fields to.

 JSON text is produced strictly (quoted keys, required commas/colons)
 but accepted leniently: whitespace anywhere, commas and colons
 optional, duplicate keys each take effect in the order they appear.

 Schema-driven transcoding:

	schema := metadata.NewMessage("Foo", []metadata.Field{
		{Name: "a", Tag: 1, Kind: metadata.KindString},
		{Name: "b", Tag: 2, Kind: metadata.KindInt32, Repeated: true},
	}, true)

	err := transproto.EncodeSchemaDriven(schema, jsonReader, pbWriter)
	err = transproto.DecodeSchemaDriven(schema, pbReader, jsonWriter)

Singular scalar fields holding their zero value are omitted from the
wire (proto3 default-omission); repeated string/bytes/message elements
and embedded message fields are always emitted regardless of emptiness,
since their presence is what the wire form uses to represent "field is
set" / "array has this many elements". Unknown JSON keys and unknown PB
tags are skipped, not errors, to support schema evolution.
*/
package transproto
