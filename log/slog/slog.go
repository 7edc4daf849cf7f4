//go:build go1.21

package slog

import (
	"context"
	stdslog "log/slog"

	"github.com/unkn0wn-root/jsonmapper"
	mlog "github.com/unkn0wn-root/jsonmapper/log"
)

var _ jsonmapper.Logger = Logger{}

type Logger struct{ L *stdslog.Logger }

// New wraps l; a nil l uses slog.Default().
func New(l *stdslog.Logger) Logger {
	if l == nil {
		l = stdslog.Default()
	}
	return Logger{L: l.With("component", "jsonmapper")}
}

func (s Logger) Debug(msg string, f jsonmapper.Fields) { s.log(stdslog.LevelDebug, msg, f) }
func (s Logger) Info(msg string, f jsonmapper.Fields)  { s.log(stdslog.LevelInfo, msg, f) }
func (s Logger) Warn(msg string, f jsonmapper.Fields)  { s.log(stdslog.LevelWarn, msg, f) }
func (s Logger) Error(msg string, f jsonmapper.Fields) { s.log(stdslog.LevelError, msg, f) }

func (s Logger) log(level stdslog.Level, msg string, f jsonmapper.Fields) {
	ctx := context.Background()
	if !s.L.Enabled(ctx, level) {
		return
	}
	s.L.LogAttrs(ctx, level, msg, attrs(f)...)
}

func attrs(f jsonmapper.Fields) []stdslog.Attr {
	keys := mlog.SortedKeys(f)
	if keys == nil {
		return nil
	}
	out := make([]stdslog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, stdslog.Any(k, f[k]))
	}
	return out
}
