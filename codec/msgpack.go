package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/jsonmapper"
)

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use and keeps nil map values (IncludeDefault).
//
// Msgpack is compact and fast; be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack[V any] struct {
	Inclusion jsonmapper.Inclusion
}

var _ Codec[map[string]any] = Msgpack[map[string]any]{}

func (c Msgpack[V]) Encode(v V) ([]byte, error) {
	val, _ := c.Inclusion.Apply(v)
	b, err := msgpack.Marshal(val)
	if err != nil {
		return nil, &jsonmapper.SerializationError{Type: fmt.Sprintf("%T", v), Err: err}
	}
	return b, nil
}

func (c Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := msgpack.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, &jsonmapper.DeserializationError{Target: fmt.Sprintf("%T", v), Size: len(b), Err: err}
	}
	return v, nil
}
