package vcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/vcache/codec"
	"github.com/unkn0wn-root/vcache/durable"
	"github.com/unkn0wn-root/vcache/store"
	"github.com/unkn0wn-root/vcache/version"
)

// ComputeFunc produces a value on a cache miss. A non-nil error marks the
// result as a failure: it is returned to the caller and never cached.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// Scope selects the durable store used by Persist and Cease.
type Scope int

const (
	ScopeLocal Scope = iota
	ScopeShared
)

func (s Scope) String() string {
	if s == ScopeShared {
		return "shared"
	}
	return "local"
}

// Cache is the group-versioned facade. No method returns an error for a
// backing-store failure: those degrade to a miss (reads) or false (writes) and
// are reported through Logger and Hooks.
type Cache[V any] interface {
	Enabled(cat Category) bool
	Close(ctx context.Context) error

	// Versioned access to the primary store
	Read(ctx context.Context, key, group string, force bool) (v V, found bool)
	Write(ctx context.Context, key string, value V, group string, ttl time.Duration) bool
	Delete(ctx context.Context, key, group string) bool
	InvalidateGroup(ctx context.Context, group string) (uint64, error)

	// Compute-or-fetch
	Remember(ctx context.Context, key string, compute ComputeFunc[V], group string, ttl time.Duration) (V, error)
	Forget(ctx context.Context, key, group string, def V) V
	Persist(ctx context.Context, key string, compute ComputeFunc[V], scope Scope, ttl time.Duration) (V, error)
	Cease(ctx context.Context, key string, scope Scope, def V) V

	// Flush empties the whole primary store. Prefer InvalidateGroup.
	Flush(ctx context.Context)
}

// Options configure New. Store and Codec are required.
// A Store adapter may cap per-call ttl (store/bigcache caps it at LifeWindow).
type Options[V any] struct {
	Prefix string // key/group prefix; "" => "vcache"
	Store  store.Store
	Codec  codec.Codec[V]

	Local  durable.Store // Persist/Cease with ScopeLocal; nil => always compute
	Shared durable.Store // Persist/Cease with ScopeShared; nil => always compute

	Versions  version.Counter             // nil => counter kept in Store
	Enabled   Enabler                     // nil => everything enabled
	Disabled  bool                        // shortcut for an Enabler that refuses all categories
	FlushFunc func(context.Context) error // used by Flush when Store is not a store.Flusher
	Logger    Logger                      // nil => NopLogger
	Hooks     Hooks                       // nil => NopHooks
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
