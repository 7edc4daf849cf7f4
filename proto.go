package jsonmapper

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	// register the well-known envelope types with protoregistry.GlobalTypes
	_ "google.golang.org/protobuf/types/known/anypb"
	_ "google.golang.org/protobuf/types/known/structpb"
)

var protoMessageType = reflect.TypeOf((*proto.Message)(nil)).Elem()

// isProtoPtr reports whether t is a pointer to a generated message struct.
func isProtoPtr(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Implements(protoMessageType)
}

// isProtoValue reports whether t is a generated message struct held by value
// (e.g. an anypb.Any field rather than *anypb.Any).
func isProtoValue(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(protoMessageType)
}

// protoExtension routes protobuf messages nested inside maps, slices and
// structs through protojson, so an *anypb.Any field keeps its "@type" form.
type protoExtension struct {
	jsoniter.DummyExtension
	marshal   protojson.MarshalOptions
	unmarshal protojson.UnmarshalOptions
}

func (x *protoExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	switch t := typ.Type1(); {
	case isProtoPtr(t):
		return &protoEncoder{typ: typ, opts: x.marshal}
	case isProtoValue(t):
		return &protoValueEncoder{typ: t, opts: x.marshal}
	}
	return nil
}

func (x *protoExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch t := typ.Type1(); {
	case isProtoPtr(t):
		return &protoDecoder{typ: typ, elem: typ.(reflect2.PtrType).Elem(), opts: x.unmarshal}
	case isProtoValue(t):
		return &protoValueDecoder{typ: t, opts: x.unmarshal}
	}
	return nil
}

type protoEncoder struct {
	typ  reflect2.Type
	opts protojson.MarshalOptions
}

func (e *protoEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *(*unsafe.Pointer)(ptr) == nil
}

func (e *protoEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	if *(*unsafe.Pointer)(ptr) == nil {
		stream.WriteNil()
		return
	}
	msg := e.typ.UnsafeIndirect(ptr).(proto.Message)
	b, err := e.opts.Marshal(msg)
	if err != nil {
		if stream.Error == nil {
			stream.Error = err
		}
		return
	}
	stream.WriteRaw(string(b))
}

type protoDecoder struct {
	typ  reflect2.Type
	elem reflect2.Type
	opts protojson.UnmarshalOptions
}

func (d *protoDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(*unsafe.Pointer)(ptr) = nil
		return
	}
	raw := iter.SkipAndReturnBytes()
	if iter.Error != nil {
		return
	}
	msg := d.elem.New().(proto.Message)
	if err := d.opts.Unmarshal(raw, msg); err != nil {
		iter.ReportError("decode "+d.typ.String(), err.Error())
		return
	}
	*(*unsafe.Pointer)(ptr) = reflect2.PtrOf(msg)
}

// protoValueEncoder writes a message stored by value; ptr addresses the
// struct itself.
type protoValueEncoder struct {
	typ  reflect.Type
	opts protojson.MarshalOptions
}

func (e *protoValueEncoder) IsEmpty(unsafe.Pointer) bool { return false }

func (e *protoValueEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	msg := reflect.NewAt(e.typ, ptr).Interface().(proto.Message)
	b, err := e.opts.Marshal(msg)
	if err != nil {
		if stream.Error == nil {
			stream.Error = err
		}
		return
	}
	stream.WriteRaw(string(b))
}

type protoValueDecoder struct {
	typ  reflect.Type
	opts protojson.UnmarshalOptions
}

// Decode resets the message in place; null leaves it empty.
func (d *protoValueDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	msg := reflect.NewAt(d.typ, ptr).Interface().(proto.Message)
	if iter.ReadNil() {
		proto.Reset(msg)
		return
	}
	raw := iter.SkipAndReturnBytes()
	if iter.Error != nil {
		return
	}
	if err := d.opts.Unmarshal(raw, msg); err != nil {
		iter.ReportError("decode "+d.typ.String(), err.Error())
	}
}
