// Package jsonmapper hands out pre-configured JSON mappers. A Mapper reads and
// writes plain Go values through json-iterator and protobuf messages through
// the protobuf JSON mapping, so envelope types such as anypb.Any wrapping a
// structpb.Struct round-trip with their "@type" intact.
//
// Two process-wide presets exist:
//   - Default: the library baseline. Explicit nulls in generic maps are kept
//     on read and on write.
//   - AlwaysIncludeNulls: every key of a generic map is written, nulls
//     included, regardless of any other configuration.
//
// Null inclusion is a per-Mapper policy (Options.Inclusion) and only governs
// generic maps (string-keyed maps, nested through maps and slices). Typed
// structs follow their own `json` tags.
//
// Usage:
//
//	m := jsonmapper.AlwaysIncludeNulls()
//	b, _ := m.Marshal(map[string]any{"someKey": nil, "someId": "abc123"})
//	// {"someId":"abc123","someKey":null}
//
//	env, _ := anypb.New(st)
//	b, _ = m.Marshal(env) // {"@type":"type.googleapis.com/google.protobuf.Struct","value":{...}}
//	var back anypb.Any
//	_ = m.Unmarshal(b, &back)
package jsonmapper
