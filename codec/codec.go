// Package codec adapts jsonmapper and the binary encodings it sits next to
// (protobuf, CBOR, MessagePack) to a typed Codec[V]. Codecs that handle
// generic maps apply the same jsonmapper.Inclusion policy as the Mapper.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
