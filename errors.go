package jsonmapper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned (wrapped) when a decode target is nil or not a pointer.
	ErrInvalidTarget = errors.New("jsonmapper: decode target must be a non-nil pointer")
	// ErrInvalidUTF8 is returned (wrapped) when JSON input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("jsonmapper: input is not valid UTF-8")
	// ErrPayloadTooLarge is returned (wrapped) by size-limited decoders.
	ErrPayloadTooLarge = errors.New("jsonmapper: payload too large")
)

// SerializationError reports a value that could not be written as JSON.
type SerializationError struct {
	Type string // Go type of the value, e.g. "chan int"
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("jsonmapper: serialize %s: %v", e.Type, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DeserializationError reports input that could not be read into the requested
// target: malformed JSON, a shape mismatch or an invalid target. Err carries
// the parser's position context.
type DeserializationError struct {
	Target string // Go type of the decode target
	Size   int    // input length in bytes
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("jsonmapper: deserialize %d bytes into %s: %v", e.Size, e.Target, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
