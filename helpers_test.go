package vcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/vcache/codec"
	"github.com/unkn0wn-root/vcache/store"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

// memStore is a plain map store with switchable failures.
type memStore struct {
	mu      sync.Mutex
	m       map[string]memEntry
	failGet error
	failSet error
	failDel error
	failInc error
	refuse  bool // Set returns ok=false
	sets    int
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore { return &memStore{m: make(map[string]memEntry)} }

func (s *memStore) Get(_ context.Context, key, group string, _ bool) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return nil, false, s.failGet
	}
	e, ok := s.m[store.Join(group, key)]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(s.m, store.Join(group, key))
		return nil, false, nil
	}
	return e.v, true, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, group string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return false, s.failSet
	}
	if s.refuse {
		return false, nil
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.m[store.Join(group, key)] = memEntry{v: value, exp: exp}
	s.sets++
	return true, nil
}

func (s *memStore) Delete(_ context.Context, key, group string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel != nil {
		return false, s.failDel
	}
	k := store.Join(group, key)
	_, ok := s.m[k]
	delete(s.m, k)
	return ok, nil
}

func (s *memStore) Increment(_ context.Context, key string, delta int64, group string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInc != nil {
		return 0, s.failInc
	}
	k := store.Join(group, key)
	var cur int64
	if e, ok := s.m[k]; ok {
		n, err := store.ParseCounter(e.v)
		if err != nil {
			return 0, err
		}
		cur = n
	}
	cur += delta
	s.m[k] = memEntry{v: store.FormatCounter(cur)}
	return cur, nil
}

func (s *memStore) raw(group, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[store.Join(group, key)]
	return e.v, ok
}

func (s *memStore) put(group, key string, v []byte) {
	s.mu.Lock()
	s.m[store.Join(group, key)] = memEntry{v: v}
	s.mu.Unlock()
}

// flushingStore adds store.Flusher to memStore.
type flushingStore struct {
	*memStore
	flushed int
	err     error
}

func (s *flushingStore) Flush(context.Context) error {
	s.flushed++
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	s.m = make(map[string]memEntry)
	s.mu.Unlock()
	return nil
}

type recHooks struct {
	NopHooks
	mu       sync.Mutex
	stale    int
	corrupt  []string
	rejected int
	storeErr []*OpError
	failed   int
	noFlush  int
}

func (h *recHooks) StaleEntry(string, string, uint64, uint64) {
	h.mu.Lock()
	h.stale++
	h.mu.Unlock()
}
func (h *recHooks) CorruptEntry(_, _, reason string) {
	h.mu.Lock()
	h.corrupt = append(h.corrupt, reason)
	h.mu.Unlock()
}
func (h *recHooks) WriteRejected(string, string) {
	h.mu.Lock()
	h.rejected++
	h.mu.Unlock()
}
func (h *recHooks) StoreError(err *OpError) {
	h.mu.Lock()
	h.storeErr = append(h.storeErr, err)
	h.mu.Unlock()
}
func (h *recHooks) ComputeFailed(string, error) {
	h.mu.Lock()
	h.failed++
	h.mu.Unlock()
}
func (h *recHooks) FlushUnavailable() {
	h.mu.Lock()
	h.noFlush++
	h.mu.Unlock()
}

var errBoom = errors.New("boom")

func newTestCache(t *testing.T, s store.Store, optsOpt func(*Options[string])) Cache[string] {
	t.Helper()
	opts := Options[string]{
		Prefix: "app",
		Store:  s,
		Codec:  codec.String{},
	}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	cc, err := New[string](opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close(context.Background()) })
	return cc
}

// counting wraps a compute and records how often it ran.
func counting(calls *int, v string, err error) ComputeFunc[string] {
	return func(context.Context) (string, error) {
		*calls++
		return v, err
	}
}
