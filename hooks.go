package jsonmapper

// Hooks are lightweight callbacks for high-signal mapper events.
// Implementations MUST be cheap and non-blocking; wrap slow sinks with
// hooks/async.
type Hooks interface {
	// A value could not be written. typ is the Go type of the value.
	SerializeFailed(typ string, err error)

	// Input could not be read into target (Go type). size is the input length.
	DeserializeFailed(target string, size int, err error)

	// Null entries were dropped from generic maps on write (IncludeNonNull only).
	NullsOmitted(count int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SerializeFailed(string, error)        {}
func (NopHooks) DeserializeFailed(string, int, error) {}
func (NopHooks) NullsOmitted(int)                     {}
