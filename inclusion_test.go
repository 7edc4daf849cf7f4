package jsonmapper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestApplyLeavesValueForKeepPolicies(t *testing.T) {
	in := map[string]any{"a": nil}
	for _, inc := range []Inclusion{IncludeDefault, IncludeAlways} {
		out, n := inc.Apply(in)
		if n != 0 {
			t.Fatalf("%s: dropped %d", inc, n)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Fatalf("%s: changed (-want +got):\n%s", inc, diff)
		}
	}
}

func TestApplyNonNull(t *testing.T) {
	type leaf struct {
		P *int `json:"p"`
	}
	var nilMap map[string]any
	var nilPtr *leaf

	cases := []struct {
		name string
		in   any
		want any
		n    int
	}{
		{
			name: "flat",
			in:   map[string]any{"a": nil, "b": 1},
			want: map[string]any{"b": 1},
			n:    1,
		},
		{
			name: "typed nils count as null",
			in:   map[string]any{"m": nilMap, "p": nilPtr, "s": []string(nil), "k": "v"},
			want: map[string]any{"k": "v"},
			n:    3,
		},
		{
			name: "nested through slices",
			in:   []any{map[string]any{"x": nil}, nil, "y"},
			want: []any{map[string]any{}, nil, "y"},
			n:    1,
		},
		{
			name: "typed map",
			in:   map[string]*leaf{"a": nil, "b": {}},
			want: map[string]any{"b": &leaf{}},
			n:    1,
		},
		{
			name: "slice of maps",
			in:   []map[string]any{{"a": nil, "b": 2}},
			want: []any{map[string]any{"b": 2}},
			n:    1,
		},
		{
			name: "struct untouched",
			in:   leaf{},
			want: leaf{},
			n:    0,
		},
		{
			name: "bytes untouched",
			in:   []byte("raw"),
			want: []byte("raw"),
			n:    0,
		},
		{
			name: "non-string keys untouched",
			in:   map[int]any{1: nil},
			want: map[int]any{1: nil},
			n:    0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n := IncludeNonNull.Apply(tc.in)
			if n != tc.n {
				t.Fatalf("dropped: got %d want %d", n, tc.n)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyNonNullSkipsMessages(t *testing.T) {
	st, err := structpb.NewStruct(map[string]any{"a": nil})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	got, n := IncludeNonNull.Apply(map[string]any{"s": st})
	if n != 0 {
		t.Fatalf("dropped %d inside a message", n)
	}
	if got.(map[string]any)["s"] != st {
		t.Fatalf("message replaced")
	}
}

// upper encodes itself regardless of contents.
type upper map[string]any

func (upper) MarshalJSON() ([]byte, error) { return []byte(`"custom"`), nil }

// label is a string-keyed map that writes itself as text.
type label map[string]string

func (*label) MarshalText() ([]byte, error) { return []byte("label"), nil }

func TestApplyNonNullKeepsSelfEncodingMaps(t *testing.T) {
	u := upper{"x": 1, "gone": nil}
	got, n := IncludeNonNull.Apply(u)
	if n != 0 {
		t.Fatalf("dropped %d from a self-encoding map", n)
	}
	if _, ok := got.(upper); !ok {
		t.Fatalf("top-level type lost: %T", got)
	}

	got, n = IncludeNonNull.Apply(map[string]any{"u": u, "l": label{"k": "v"}, "drop": nil})
	if n != 1 {
		t.Fatalf("dropped: got %d want 1", n)
	}
	m := got.(map[string]any)
	if _, ok := m["u"].(upper); !ok {
		t.Fatalf("nested json.Marshaler lost: %T", m["u"])
	}
	if _, ok := m["l"].(label); !ok {
		t.Fatalf("nested pointer TextMarshaler lost: %T", m["l"])
	}

	mp, err := New(Options{Inclusion: IncludeNonNull})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, tc := range []struct {
		in   any
		want string
	}{
		{u, `"custom"`},
		{map[string]any{"u": u, "drop": nil}, `{"u":"custom"}`},
	} {
		out, err := mp.MarshalToString(tc.in)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if out != tc.want {
			t.Fatalf("got %s want %s", out, tc.want)
		}
	}
}

func TestInclusionString(t *testing.T) {
	for inc, want := range map[Inclusion]string{
		IncludeDefault: "default",
		IncludeAlways:  "always",
		IncludeNonNull: "non_null",
		Inclusion(9):   "Inclusion(9)",
	} {
		if inc.String() != want {
			t.Fatalf("%d: got %q want %q", uint8(inc), inc.String(), want)
		}
	}
}
