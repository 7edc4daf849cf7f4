package codec

import "github.com/unkn0wn-root/jsonmapper"

// JSON is a Codec backed by a jsonmapper.Mapper. The zero value uses
// jsonmapper.Default(); set M to jsonmapper.AlwaysIncludeNulls() or a custom
// Mapper for a different null policy.
//
// V may be a proto message pointer (e.g. *anypb.Any); it is then read and
// written with the protobuf JSON mapping.
type JSON[V any] struct {
	M jsonmapper.Mapper
}

var _ Codec[map[string]any] = JSON[map[string]any]{}

func (c JSON[V]) mapper() jsonmapper.Mapper {
	if c.M == nil {
		return jsonmapper.Default()
	}
	return c.M
}

func (c JSON[V]) Encode(v V) ([]byte, error) { return c.mapper().Marshal(v) }
func (c JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.mapper().Unmarshal(b, &v)
	return v, err
}
