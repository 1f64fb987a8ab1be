// Package durable defines the secondary store used by Persist and Cease.
//
// A durable store is flat and ungrouped. vcache uses two of them: a narrow
// local scope (one process or site) and a wider shared scope (every replica).
// Scoping is the store's concern, usually a key prefix or a separate backend.
package durable

import (
	"context"
	"time"
)

type Store interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Delete removes key; ok reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)
}
