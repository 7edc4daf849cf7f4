package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/jsonmapper"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func lines(buf *bytes.Buffer) []string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestLogsEveryEventByDefault(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{})

	h.SerializeFailed("chan int", errors.New("unsupported"))
	h.DeserializeFailed("*anypb.Any", 5, errors.New("syntax"))
	h.NullsOmitted(2)

	got := lines(&buf)
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "jsonmapper.serialize_failed")
	assert.Contains(t, got[0], `type="chan int"`)
	assert.Contains(t, got[1], "jsonmapper.deserialize_failed")
	assert.Contains(t, got[1], "size=5")
	assert.Contains(t, got[2], "jsonmapper.nulls_omitted")
	assert.Contains(t, got[2], "count=2")
}

func TestSampling(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{FailureEvery: 5, OmittedEvery: 2})

	for i := 0; i < 10; i++ {
		h.SerializeFailed("chan int", errors.New("x"))
		h.NullsOmitted(1)
	}

	var failures, omitted int
	for _, l := range lines(&buf) {
		switch {
		case strings.Contains(l, "serialize_failed"):
			failures++
		case strings.Contains(l, "nulls_omitted"):
			omitted++
		}
	}
	assert.Equal(t, 2, failures)
	assert.Equal(t, 5, omitted)
}

func TestRateLimit(t *testing.T) {
	var buf bytes.Buffer
	h := New(newLogger(&buf), Options{MaxPerSecond: 0.001})

	for i := 0; i < 20; i++ {
		h.DeserializeFailed("map[string]interface {}", 1, errors.New("x"))
	}
	assert.Len(t, lines(&buf), 1)
}

func TestNilLogger(t *testing.T) {
	h := New(nil, Options{})
	assert.NotPanics(t, func() {
		h.SerializeFailed("x", nil)
		h.DeserializeFailed("x", 0, nil)
		h.NullsOmitted(1)
	})
}

func TestWithMapper(t *testing.T) {
	var buf bytes.Buffer
	m, err := jsonmapper.New(jsonmapper.Options{
		Inclusion: jsonmapper.IncludeNonNull,
		Hooks:     New(newLogger(&buf), Options{}),
	})
	require.NoError(t, err)

	b, err := m.Marshal(map[string]any{"someKey": nil, "someId": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, `{"someId":"abc123"}`, string(b))
	assert.Contains(t, buf.String(), "count=1")
}
