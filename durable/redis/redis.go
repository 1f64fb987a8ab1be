// Package redis is a durable store on Redis, suited to the shared scope.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/vcache/durable"
)

var ErrNilClient = errors.New("redis durable: nil client")

type Store struct {
	rdb    goredis.UniversalClient
	prefix string
}

var _ durable.Store = (*Store)(nil)

// New scopes every key under prefix (e.g. "site:42:" or "network:").
func New(client goredis.UniversalClient, prefix string) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	return &Store{rdb: client, prefix: prefix}, nil
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.rdb.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Del(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
