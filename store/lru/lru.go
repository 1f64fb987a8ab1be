package lru

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/unkn0wn-root/vcache/store"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no expiry
}

// Store is a size-bounded in-process primary store.
// Expired entries are dropped lazily on Get.
//
// Group version counters share the bound with entries and can be evicted. An
// evicted counter restarts at 1 on the next write, which can revive entries
// still tagged 1 from before an InvalidateGroup. Size the store so counters
// stay resident, give entries a ttl, or keep versions in a version.Counter
// outside this store.
type Store struct {
	c    *lru.Cache[string, entry]
	now  func() time.Time
	incr sync.Mutex
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Flusher = (*Store)(nil)
)

// New returns a store holding at most size entries (size <= 0 => 4096).
func New(size int) (*Store, error) {
	if size <= 0 {
		size = 4096
	}
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Store{c: c, now: time.Now}, nil
}

func (s *Store) Get(_ context.Context, key, group string, _ bool) ([]byte, bool, error) {
	b, ok := s.get(store.Join(group, key))
	return b, ok, nil
}

func (s *Store) get(k string) ([]byte, bool) {
	e, ok := s.c.Get(k)
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && s.now().After(e.exp) {
		s.c.Remove(k)
		return nil, false
	}
	return e.v, true
}

func (s *Store) Set(_ context.Context, key string, value []byte, group string, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.c.Add(store.Join(group, key), entry{v: value, exp: exp})
	return true, nil
}

func (s *Store) Delete(_ context.Context, key, group string) (bool, error) {
	k := store.Join(group, key)
	if _, ok := s.get(k); !ok {
		return false, nil
	}
	return s.c.Remove(k), nil
}

func (s *Store) Increment(_ context.Context, key string, delta int64, group string) (int64, error) {
	k := store.Join(group, key)

	s.incr.Lock()
	defer s.incr.Unlock()

	var cur int64
	if b, ok := s.get(k); ok {
		n, err := store.ParseCounter(b)
		if err != nil {
			return 0, err
		}
		cur = n
	}
	cur += delta
	s.c.Add(k, entry{v: store.FormatCounter(cur)})
	return cur, nil
}

func (s *Store) Flush(context.Context) error {
	s.c.Purge()
	return nil
}

// Len reports resident entries, expired ones included until touched.
func (s *Store) Len() int { return s.c.Len() }
