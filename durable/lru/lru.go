// Package lru is an in-process durable store, suited to the local scope.
package lru

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/unkn0wn-root/vcache/durable"
)

type item struct {
	v   []byte
	exp time.Time
}

type Store struct {
	c   *lru.Cache[string, item]
	now func() time.Time
}

var _ durable.Store = (*Store)(nil)

func New(size int) (*Store, error) {
	if size <= 0 {
		size = 1024
	}
	c, err := lru.New[string, item](size)
	if err != nil {
		return nil, err
	}
	return &Store{c: c, now: time.Now}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !it.exp.IsZero() && s.now().After(it.exp) {
		s.c.Remove(key)
		return nil, false, nil
	}
	return it.v, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	it := item{v: value}
	if ttl > 0 {
		it.exp = s.now().Add(ttl)
	}
	s.c.Add(key, it)
	return true, nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if _, ok, _ := s.Get(ctx, key); !ok {
		return false, nil
	}
	return s.c.Remove(key), nil
}

func (s *Store) Len() int { return s.c.Len() }
