package jsonmapper

import (
	"io"
	"sync"

	"google.golang.org/protobuf/reflect/protoregistry"
)

// Mapper is a configured JSON reader/writer. Instances are immutable after New
// and safe for concurrent use.
type Mapper interface {
	Marshal(v any) ([]byte, error)
	MarshalToString(v any) (string, error)
	Unmarshal(data []byte, out any) error
	UnmarshalFromString(s string, out any) error

	// Encode writes the JSON form of v to w. Nothing is written if encoding fails.
	Encode(w io.Writer, v any) error
	// Decode reads r to EOF and decodes it into out.
	Decode(r io.Reader, out any) error

	// Convert copies src into dst through its JSON representation
	// (e.g. map[string]any -> struct, or -> *structpb.Struct).
	Convert(src, dst any) error

	Valid(data []byte) bool
	Inclusion() Inclusion
}

// Resolver looks up protobuf message types by URL when reading and writing
// anypb.Any. *protoregistry.Types satisfies it.
type Resolver interface {
	protoregistry.MessageTypeResolver
	protoregistry.ExtensionTypeResolver
}

// Options tune a Mapper. The zero value is the library baseline.
type Options struct {
	Inclusion Inclusion // null handling for generic maps; zero => IncludeDefault

	UseNumber             bool // decode numbers in `any` as json.Number instead of float64
	DisallowUnknownFields bool // fail on unknown struct / proto fields (default: ignore)
	EscapeHTML            bool // escape <, > and & in strings

	EmitUnpopulated bool // proto: write zero-valued fields
	UseProtoNames   bool // proto: snake_case field names instead of lowerCamelCase

	Resolver Resolver // nil => protoregistry.GlobalTypes
	Logger   Logger   // nil => NopLogger
	Hooks    Hooks    // nil => NopHooks
}

// New builds a Mapper from opts.
func New(opts Options) (Mapper, error) {
	return newMapper(opts)
}

var (
	defaultMapper = sync.OnceValue(func() Mapper { return mustNew(Options{}) })
	alwaysMapper  = sync.OnceValue(func() Mapper { return mustNew(Options{Inclusion: IncludeAlways}) })
)

// Default returns the shared Mapper with the library's baseline null handling.
func Default() Mapper { return defaultMapper() }

// AlwaysIncludeNulls returns the shared Mapper that writes every generic map
// key, including those whose value is nil.
func AlwaysIncludeNulls() Mapper { return alwaysMapper() }

func mustNew(opts Options) Mapper {
	m, err := New(opts)
	if err != nil {
		panic(err)
	}
	return m
}
