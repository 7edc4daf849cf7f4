package codec

import (
	"fmt"

	"github.com/unkn0wn-root/jsonmapper"
)

// LimitCodec wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type LimitCodec[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode. Larger payloads fail with a
	// *jsonmapper.DeserializationError wrapping jsonmapper.ErrPayloadTooLarge
	// without invoking Inner.
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, &jsonmapper.DeserializationError{
			Target: fmt.Sprintf("%T", zero),
			Size:   len(b),
			Err:    fmt.Errorf("%w: %d > %d", jsonmapper.ErrPayloadTooLarge, len(b), c.MaxDecode),
		}
	}
	return c.Inner.Decode(b)
}
