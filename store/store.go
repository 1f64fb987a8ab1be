// Package store defines the primary key/value store contract consumed by vcache.
//
// A Store is a flat, group-aware byte store. Groups are only a naming scope:
// the store is not expected to enumerate or delete by group. vcache layers
// group invalidation on top with a per-group version counter kept in the same
// store, so Increment MUST be atomic for the deployment's scope (process-wide
// for in-memory engines, cluster-wide for Redis).
//
// Values must round-trip byte-for-byte. Counters written through Increment (or
// Set with a decimal payload) are stored as base-10 ASCII integers.
package store

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// ErrNotInteger is returned by Increment when the current value is not a counter.
var ErrNotInteger = errors.New("store: value is not an integer")

// Store is the primary store capability.
type Store interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// force asks layered stores to bypass any local copy; others may ignore it.
	Get(ctx context.Context, key, group string, force bool) ([]byte, bool, error)

	// Set stores value under group/key. ttl <= 0 means no expiry.
	// ok=false with a nil error means the store refused the write.
	Set(ctx context.Context, key string, value []byte, group string, ttl time.Duration) (ok bool, err error)

	// Delete removes group/key. ok reports whether something was removed.
	Delete(ctx context.Context, key, group string) (ok bool, err error)

	// Increment adds delta to the integer at group/key and returns the new value.
	// A missing key counts as 0.
	Increment(ctx context.Context, key string, delta int64, group string) (int64, error)
}

// Flusher is implemented by stores that can drop their entire contents.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Join builds the physical key for adapters with a single flat keyspace.
// The group is length-prefixed so the mapping stays one-to-one when group or
// key contain ':'.
func Join(group, key string) string {
	return strconv.Itoa(len(group)) + ":" + group + ":" + key
}

// ParseCounter decodes a counter value written by Increment or FormatCounter.
func ParseCounter(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, ErrNotInteger
	}
	return n, nil
}

// FormatCounter encodes n the way ParseCounter expects.
func FormatCounter(n int64) []byte {
	return strconv.AppendInt(nil, n, 10)
}
