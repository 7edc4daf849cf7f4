package zap

import (
	"go.uber.org/zap"

	"github.com/unkn0wn-root/jsonmapper"
	mlog "github.com/unkn0wn-root/jsonmapper/log"
)

var _ jsonmapper.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New wraps l; a nil l logs nothing.
func New(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{L: l.Named("jsonmapper")}
}

func (z ZapLogger) Debug(msg string, f jsonmapper.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f jsonmapper.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f jsonmapper.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f jsonmapper.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f jsonmapper.Fields) []zap.Field {
	keys := mlog.SortedKeys(f)
	if keys == nil {
		return nil
	}
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
