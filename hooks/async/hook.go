// Package asynchook moves vcache hook calls off the hot path.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{StaleEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := vcache.New[User](vcache.Options[User]{
//	    Prefix: "app",
//	    Store:  st,
//	    Codec:  codec.JSON[User]{},
//	    Hooks:  hooks,
//	})
//
// Events are dropped, not queued unboundedly, when the workers fall behind.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/vcache"
)

type Hooks struct {
	inner   vcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ vcache.Hooks = (*Hooks)(nil)

func New(inner vcache.Hooks, workers, qlen int) *Hooks {
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

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports events discarded because the queue was full or closed.
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
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) StaleEntry(g, k string, ev, cv uint64) {
	h.try(func() { h.inner.StaleEntry(g, k, ev, cv) })
}
func (h *Hooks) CorruptEntry(g, k, r string)    { h.try(func() { h.inner.CorruptEntry(g, k, r) }) }
func (h *Hooks) WriteRejected(g, k string)      { h.try(func() { h.inner.WriteRejected(g, k) }) }
func (h *Hooks) StoreError(err *vcache.OpError) { h.try(func() { h.inner.StoreError(err) }) }
func (h *Hooks) ComputeFailed(k string, err error) {
	h.try(func() { h.inner.ComputeFailed(k, err) })
}
func (h *Hooks) FlushUnavailable() { h.try(func() { h.inner.FlushUnavailable() }) }
