// Package codec implements deterministic protobuf-style serialization used for
// block header hashing and persisted records.
//
// Struct types carry `fieldNumber` tags and maintain matching Encode/Decode
// methods in a sibling *_codec.go file. Determinism matters here: both signing
// domains of a block header are hashes of codec output, so encoding the same
// values must always produce the same bytes.
package codec

// Encodable is the interface of structs with maintained codec methods.
type Encodable interface {
	Encode() ([]byte, error)
	MustEncode() []byte
}

// Decodable is the interface of structs which decode from codec bytes.
type Decodable interface {
	Decode([]byte) error
}

// DecodableReader decodes from an existing reader, used for nested structs.
type DecodableReader interface {
	DecodeFromReader(*Reader) error
}

// EncodeDecodable can encode and decode.
type EncodeDecodable interface {
	Encodable
	Decodable
	DecodableReader
}
