package jsonmapper

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoregistry"
)

type mapper struct {
	api       jsoniter.API
	marshal   protojson.MarshalOptions
	unmarshal protojson.UnmarshalOptions
	inclusion Inclusion
	log       Logger
	hooks     Hooks
}

var _ Mapper = (*mapper)(nil)

func newMapper(opts Options) (*mapper, error) {
	if !opts.Inclusion.valid() {
		return nil, fmt.Errorf("jsonmapper: unknown inclusion %s", opts.Inclusion)
	}

	var resolver Resolver = protoregistry.GlobalTypes
	if opts.Resolver != nil {
		resolver = opts.Resolver
	}

	m := &mapper{
		marshal: protojson.MarshalOptions{
			EmitUnpopulated: opts.EmitUnpopulated,
			UseProtoNames:   opts.UseProtoNames,
			Resolver:        resolver,
		},
		unmarshal: protojson.UnmarshalOptions{
			DiscardUnknown: !opts.DisallowUnknownFields,
			Resolver:       resolver,
		},
		inclusion: opts.Inclusion,
		log:       coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:     coalesce[Hooks](opts.Hooks, NopHooks{}),
	}

	// frozen configs cache encoders per type; extensions must be registered
	// before first use.
	m.api = jsoniter.Config{
		EscapeHTML:             opts.EscapeHTML,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              opts.UseNumber,
		DisallowUnknownFields:  opts.DisallowUnknownFields,
	}.Froze()
	m.api.RegisterExtension(&protoExtension{marshal: m.marshal, unmarshal: m.unmarshal})
	return m, nil
}

func (m *mapper) Inclusion() Inclusion { return m.inclusion }

func (m *mapper) Marshal(v any) ([]byte, error) {
	b, err := m.marshalValue(v)
	if err != nil {
		return nil, m.serializeFailed(v, err)
	}
	return b, nil
}

func (m *mapper) marshalValue(v any) ([]byte, error) {
	if msg, ok := v.(proto.Message); ok {
		// typed-nil messages are written as null, same as when nested
		if !msg.ProtoReflect().IsValid() {
			return []byte("null"), nil
		}
		return m.marshal.Marshal(msg)
	}
	v, dropped := m.inclusion.Apply(v)
	if dropped > 0 {
		m.hooks.NullsOmitted(dropped)
		m.log.Debug("null map entries omitted", Fields{"count": dropped, "inclusion": m.inclusion.String()})
	}
	return m.api.Marshal(v)
}

func (m *mapper) MarshalToString(v any) (string, error) {
	b, err := m.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (m *mapper) Unmarshal(data []byte, out any) error {
	if err := m.unmarshalValue(data, out); err != nil {
		return m.deserializeFailed(out, len(data), err)
	}
	return nil
}

// unmarshalValue decodes into a fresh value and only assigns it to out on
// success, so a failed decode leaves out untouched.
func (m *mapper) unmarshalValue(data []byte, out any) error {
	rv := reflect.ValueOf(out)
	if out == nil || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}

	if msg, ok := out.(proto.Message); ok {
		fresh := msg.ProtoReflect().New().Interface()
		if err := m.unmarshal.Unmarshal(data, fresh); err != nil {
			return err
		}
		proto.Reset(msg)
		proto.Merge(msg, fresh)
		return nil
	}

	target := rv.Elem()
	if isProtoPtr(target.Type()) {
		// **T: null clears the pointer, anything else allocates the message
		if isNull := bytes.Equal(bytes.TrimSpace(data), []byte("null")); isNull {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}
		fresh := reflect.New(target.Type().Elem()).Interface().(proto.Message)
		if err := m.unmarshal.Unmarshal(data, fresh); err != nil {
			return err
		}
		target.Set(reflect.ValueOf(fresh))
		return nil
	}

	// json-iterator copies invalid UTF-8 through; protojson rejects it
	if !utf8.Valid(data) {
		return ErrInvalidUTF8
	}
	fresh := reflect.New(target.Type())
	if err := m.api.Unmarshal(data, fresh.Interface()); err != nil {
		return err
	}
	target.Set(fresh.Elem())
	return nil
}

func (m *mapper) UnmarshalFromString(s string, out any) error {
	return m.Unmarshal([]byte(s), out)
}

func (m *mapper) Encode(w io.Writer, v any) error {
	b, err := m.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func (m *mapper) Decode(r io.Reader, out any) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return m.Unmarshal(b, out)
}

func (m *mapper) Convert(src, dst any) error {
	b, err := m.Marshal(src)
	if err != nil {
		return err
	}
	return m.Unmarshal(b, dst)
}

func (m *mapper) Valid(data []byte) bool { return utf8.Valid(data) && m.api.Valid(data) }

func (m *mapper) serializeFailed(v any, err error) error {
	typ := typeName(v)
	m.hooks.SerializeFailed(typ, err)
	m.log.Debug("serialize failed", Fields{"type": typ, "err": err})
	return &SerializationError{Type: typ, Err: err}
}

func (m *mapper) deserializeFailed(out any, size int, err error) error {
	target := typeName(out)
	m.hooks.DeserializeFailed(target, size, err)
	m.log.Debug("deserialize failed", Fields{"target": target, "size": size, "err": err})
	return &DeserializationError{Target: target, Size: size, Err: err}
}
