package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/unkn0wn-root/jsonmapper"
)

// Protobuf is a binary protobuf Codec for a concrete message type.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *structpb.Struct { return &structpb.Struct{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	b, err := proto.Marshal(v)
	if err != nil {
		return nil, &jsonmapper.SerializationError{Type: fmt.Sprintf("%T", v), Err: err}
	}
	return b, nil
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, &jsonmapper.DeserializationError{Target: fmt.Sprintf("%T", m), Size: len(b), Err: err}
	}
	return m, nil
}
