package bigcache

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/vcache/store"
)

// Store is an in-process primary store on top of BigCache.
//
// BigCache has no per-entry TTL, so each value carries an 8-byte expiry and
// expired entries are dropped lazily on Get. Config.LifeWindow still caps every
// entry: a ttl longer than LifeWindow (or ttl <= 0) lives for LifeWindow.
// Increment is serialized with a process-local mutex.
type Store struct {
	c    *bc.BigCache
	now  func() time.Time
	incr sync.Mutex
}

const expSize = 8

var (
	_ store.Store   = (*Store)(nil)
	_ store.Flusher = (*Store)(nil)
)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	conf.Verbose = false
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Store{c: c, now: time.Now}, nil
}

func (s *Store) Get(_ context.Context, key, group string, _ bool) ([]byte, bool, error) {
	return s.load(store.Join(group, key))
}

func (s *Store) load(k string) ([]byte, bool, error) {
	b, err := s.c.Get(k)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(b) < expSize {
		// not written by this adapter
		_ = s.c.Delete(k)
		return nil, false, nil
	}
	if exp := int64(binary.BigEndian.Uint64(b)); exp != 0 && s.now().UnixNano() > exp {
		_ = s.c.Delete(k)
		return nil, false, nil
	}
	return b[expSize:], true, nil
}

func (s *Store) put(k string, value []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = s.now().Add(ttl).UnixNano()
	}
	b := make([]byte, expSize+len(value))
	binary.BigEndian.PutUint64(b, uint64(exp))
	copy(b[expSize:], value)
	return s.c.Set(k, b)
}

func (s *Store) Set(_ context.Context, key string, value []byte, group string, ttl time.Duration) (bool, error) {
	if err := s.put(store.Join(group, key), value, ttl); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(_ context.Context, key, group string) (bool, error) {
	k := store.Join(group, key)
	if _, ok, err := s.load(k); err != nil || !ok {
		return false, err
	}
	err := s.c.Delete(k)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Increment writes counters without expiry.
func (s *Store) Increment(_ context.Context, key string, delta int64, group string) (int64, error) {
	k := store.Join(group, key)

	s.incr.Lock()
	defer s.incr.Unlock()

	var cur int64
	b, ok, err := s.load(k)
	if err != nil {
		return 0, err
	}
	if ok {
		if cur, err = store.ParseCounter(b); err != nil {
			return 0, err
		}
	}
	cur += delta
	if err := s.put(k, store.FormatCounter(cur), 0); err != nil {
		return 0, err
	}
	return cur, nil
}

// Flush drops every shard.
func (s *Store) Flush(context.Context) error {
	return s.c.Reset()
}

func (s *Store) Close(context.Context) error {
	return s.c.Close()
}
