// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    FailureEvery: 10, // sample logs: ~every 10th failure
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	m, _ := jsonmapper.New(jsonmapper.Options{
//	    Inclusion: jsonmapper.IncludeAlways,
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/jsonmapper"
)

// Hooks forwards events to inner on a bounded queue served by worker
// goroutines. Events are dropped when the queue is full or after Close.
type Hooks struct {
	inner   jsonmapper.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against concurrent sends
	closed  bool
	dropped atomic.Uint64
}

var _ jsonmapper.Hooks = (*Hooks)(nil)

func New(inner jsonmapper.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Safe to call twice.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) SerializeFailed(typ string, err error) {
	h.try(func() { h.inner.SerializeFailed(typ, err) })
}
func (h *Hooks) DeserializeFailed(target string, size int, err error) {
	h.try(func() { h.inner.DeserializeFailed(target, size, err) })
}
func (h *Hooks) NullsOmitted(n int) { h.try(func() { h.inner.NullsOmitted(n) }) }
