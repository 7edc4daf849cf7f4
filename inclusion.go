package jsonmapper

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"

	"google.golang.org/protobuf/proto"
)

// Inclusion is the null-inclusion policy a Mapper applies to generic maps
// when writing. Reads always keep explicit nulls as present keys.
type Inclusion uint8

const (
	// IncludeDefault keeps the JSON library's baseline: nil map values are
	// written as null.
	IncludeDefault Inclusion = iota
	// IncludeAlways writes every map key, nil values included, as an explicit
	// policy rather than a library default.
	IncludeAlways
	// IncludeNonNull drops map entries whose value is nil.
	IncludeNonNull
)

func (i Inclusion) String() string {
	switch i {
	case IncludeDefault:
		return "default"
	case IncludeAlways:
		return "always"
	case IncludeNonNull:
		return "non_null"
	default:
		return fmt.Sprintf("Inclusion(%d)", uint8(i))
	}
}

func (i Inclusion) valid() bool { return i <= IncludeNonNull }

// Apply returns the value to encode under policy i and the number of map
// entries dropped. Only IncludeNonNull rewrites anything: it copies
// string-keyed maps (and the maps/slices nested in them) without their nil
// entries. Structs and proto messages are left untouched. v is never mutated.
func (i Inclusion) Apply(v any) (any, int) {
	if i != IncludeNonNull {
		return v, 0
	}
	return dropNulls(v)
}

func dropNulls(v any) (any, int) {
	switch t := v.(type) {
	case nil:
		return nil, 0
	case proto.Message:
		return v, 0
	case map[string]any:
		out := make(map[string]any, len(t))
		n := 0
		for k, e := range t {
			if isNull(e) {
				n++
				continue
			}
			pe, c := dropNulls(e)
			out[k] = pe
			n += c
		}
		return out, n
	case []any:
		out := make([]any, len(t))
		n := 0
		for idx, e := range t {
			var c int
			out[idx], c = dropNulls(e)
			n += c
		}
		return out, n
	}

	rv := reflect.ValueOf(v)
	if ownsEncoding(rv.Type()) {
		return v, 0
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v, 0
		}
		out := make(map[string]any, rv.Len())
		n := 0
		it := rv.MapRange()
		for it.Next() {
			e := it.Value()
			if isNullValue(e) {
				n++
				continue
			}
			pe, c := dropNulls(e.Interface())
			out[it.Key().String()] = pe
			n += c
		}
		return out, n
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v, 0
		}
		if !holdsMaps(rv.Type().Elem()) {
			return v, 0
		}
		out := make([]any, rv.Len())
		n := 0
		for idx := 0; idx < rv.Len(); idx++ {
			var c int
			out[idx], c = dropNulls(rv.Index(idx).Interface())
			n += c
		}
		return out, n
	}
	return v, 0
}

// selfEncoders are the marshaler shapes honored by the JSON engine and the
// binary codecs (fxamacker/cbor, vmihailenco/msgpack).
var selfEncoders = []reflect.Type{
	reflect.TypeOf((*json.Marshaler)(nil)).Elem(),
	reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem(),
	reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem(),
	reflect.TypeOf((*interface{ MarshalCBOR() ([]byte, error) })(nil)).Elem(),
	reflect.TypeOf((*interface{ MarshalMsgpack() ([]byte, error) })(nil)).Elem(),
}

// ownsEncoding reports whether t (or *t) writes itself, in which case
// rebuilding it as a plain map would lose that encoding.
func ownsEncoding(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	for _, m := range selfEncoders {
		if t.Implements(m) || pt.Implements(m) {
			return true
		}
	}
	return false
}

// holdsMaps reports whether elements of type t may contain generic maps.
// []byte and other scalar slices keep their own encoding.
func holdsMaps(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	return isNullValue(reflect.ValueOf(v))
}

func isNullValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isNullValue(rv.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
