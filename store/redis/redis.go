package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/vcache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Redis is a primary store backed by go-redis. INCRBY gives cluster-wide
// atomic version bumps; FLUSHDB backs Flush.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
	allowFlush  bool
}

var (
	_ store.Store   = (*Redis)(nil)
	_ store.Flusher = (*Redis)(nil)
)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
	// AllowFlush enables FLUSHDB on Flush. Leave false when the database is
	// shared with anything else.
	AllowFlush bool
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient, allowFlush: cfg.AllowFlush}, nil
}

func (s *Redis) Get(ctx context.Context, key, group string, _ bool) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, store.Join(group, key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte, group string, ttl time.Duration) (bool, error) {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.rdb.Set(ctx, store.Join(group, key), value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Redis) Delete(ctx context.Context, key, group string) (bool, error) {
	n, err := s.rdb.Del(ctx, store.Join(group, key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Redis) Increment(ctx context.Context, key string, delta int64, group string) (int64, error) {
	n, err := s.rdb.IncrBy(ctx, store.Join(group, key), delta).Result()
	if err != nil {
		// WRONGTYPE / "not an integer" replies surface as plain redis errors.
		var rerr goredis.Error
		if errors.As(err, &rerr) {
			return 0, errors.Join(store.ErrNotInteger, err)
		}
		return 0, err
	}
	return n, nil
}

// Flush drops the whole logical database when AllowFlush is set.
func (s *Redis) Flush(ctx context.Context) error {
	if !s.allowFlush {
		return errors.New("redis store: flush not allowed by config")
	}
	return s.rdb.FlushDB(ctx).Err()
}

// Close releases the client only when this store owns it.
// Repeated calls are no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
