package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/jsonmapper"
)

// CBOR is a Codec that serializes values using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when you need byte-for-byte stable outputs (e.g., hashing/content addressing).
// Otherwise PreferredUnsortedEncOptions are used.
// Nil values in generic maps follow the given jsonmapper.Inclusion; maps nested
// in `any` decode as map[string]any so they read back like JSON objects.
type CBOR[V any] struct {
	enc       cbor.EncMode
	dec       cbor.DecMode
	inclusion jsonmapper.Inclusion
}

var _ Codec[map[string]any] = CBOR[map[string]any]{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
//
// Also sets time encoding to RFC3339Nano.
func NewCBOR[V any](deterministic bool, inclusion jsonmapper.Inclusion) (CBOR[V], error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm, inclusion: inclusion}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR[V any](deterministic bool, inclusion jsonmapper.Inclusion) CBOR[V] {
	c, err := NewCBOR[V](deterministic, inclusion)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode encodes v as CBOR using the configured EncMode.
func (c CBOR[V]) Encode(v V) ([]byte, error) {
	val, _ := c.inclusion.Apply(v)
	b, err := c.enc.Marshal(val)
	if err != nil {
		return nil, &jsonmapper.SerializationError{Type: fmt.Sprintf("%T", v), Err: err}
	}
	return b, nil
}

// Decode decodes b into a V using the configured DecMode.
func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if err := c.dec.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, &jsonmapper.DeserializationError{Target: fmt.Sprintf("%T", v), Size: len(b), Err: err}
	}
	return v, nil
}
