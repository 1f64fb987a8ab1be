package ristretto

import (
	"context"
	"errors"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/vcache/store"
)

// CostFunc prices an entry for Ristretto's admission policy.
type CostFunc func(key string, value []byte) int64

// Store is an in-process primary store on top of Ristretto.
// Writes wait for Ristretto's buffers so a Get right after Set observes it;
// the version protocol depends on that.
type Store struct {
	c    *rc.Cache
	cost CostFunc
	incr sync.Mutex
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Flusher = (*Store)(nil)
)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
	Cost        CostFunc // nil => every entry costs 1
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	cost := cfg.Cost
	if cost == nil {
		cost = func(string, []byte) int64 { return 1 }
	}
	return &Store{c: c, cost: cost}, nil
}

func (s *Store) Get(_ context.Context, key, group string, _ bool) ([]byte, bool, error) {
	k := store.Join(group, key)
	v, ok := s.c.Get(k)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// not ours; drop it
		s.c.Del(k)
		return nil, false, nil
	}
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, group string, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	k := store.Join(group, key)
	ok := s.c.SetWithTTL(k, value, s.cost(k, value), ttl)
	s.c.Wait()
	return ok, nil
}

func (s *Store) Delete(_ context.Context, key, group string) (bool, error) {
	k := store.Join(group, key)
	_, existed := s.c.Get(k)
	s.c.Del(k)
	return existed, nil
}

func (s *Store) Increment(_ context.Context, key string, delta int64, group string) (int64, error) {
	k := store.Join(group, key)

	s.incr.Lock()
	defer s.incr.Unlock()

	var cur int64
	if v, ok := s.c.Get(k); ok {
		b, _ := v.([]byte)
		n, err := store.ParseCounter(b)
		if err != nil {
			return 0, err
		}
		cur = n
	}
	cur += delta
	next := store.FormatCounter(cur)
	if !s.c.SetWithTTL(k, next, s.cost(k, next), 0) {
		return 0, errors.New("ristretto: counter write rejected")
	}
	s.c.Wait()
	return cur, nil
}

func (s *Store) Flush(context.Context) error {
	s.c.Clear()
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes Ristretto's counters when Config.Metrics is set.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
