package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/unkn0wn-root/jsonmapper"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	FailureEvery uint64
	OmittedEvery uint64
	// MaxPerSecond caps failure logs per second across both failure kinds;
	// 0 = no cap. Applied after sampling.
	MaxPerSecond float64
}

type Hooks struct {
	l       *slog.Logger
	opts    Options
	limiter *rate.Limiter

	failureCtr atomic.Uint64
	omittedCtr atomic.Uint64
}

var _ jsonmapper.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	h := &Hooks{l: l, opts: opts}
	if opts.MaxPerSecond > 0 {
		burst := int(opts.MaxPerSecond)
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(opts.MaxPerSecond), burst)
	}
	return h
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) allowFailure() bool {
	if h.l == nil || !sample(h.opts.FailureEvery, &h.failureCtr) {
		return false
	}
	return h.limiter == nil || h.limiter.Allow()
}

func (h *Hooks) SerializeFailed(typ string, err error) {
	if !h.allowFailure() {
		return
	}
	h.l.Warn("jsonmapper.serialize_failed",
		"type", typ,
		"err", err)
}

func (h *Hooks) DeserializeFailed(target string, size int, err error) {
	if !h.allowFailure() {
		return
	}
	h.l.Warn("jsonmapper.deserialize_failed",
		"target", target,
		"size", size,
		"err", err)
}

func (h *Hooks) NullsOmitted(count int) {
	if h.l == nil || !sample(h.opts.OmittedEvery, &h.omittedCtr) {
		return
	}
	h.l.Debug("jsonmapper.nulls_omitted",
		"count", count)
}
