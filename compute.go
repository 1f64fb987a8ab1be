package vcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/vcache/durable"
)

// Remember returns the cached value for key in group, or runs compute and
// caches its result. The returned pair is always compute's when it ran; a
// failed cache write does not change it.
func (c *cache[V]) Remember(ctx context.Context, key string, compute ComputeFunc[V], group string, ttl time.Duration) (V, error) {
	if v, ok := c.Read(ctx, key, group, false); ok {
		return v, nil
	}
	if compute == nil {
		var zero V
		return zero, ErrNilCompute
	}
	v, err := compute(ctx)
	if err != nil {
		c.hooks.ComputeFailed(key, err)
		return v, err
	}
	_ = c.Write(ctx, key, v, group, ttl)
	return v, nil
}

// Forget returns and deletes the cached value, or returns def on a miss.
func (c *cache[V]) Forget(ctx context.Context, key, group string, def V) V {
	v, ok := c.Read(ctx, key, group, false)
	if !ok {
		return def
	}
	_ = c.Delete(ctx, key, group)
	return v
}

// Persist is Remember against a durable scope. No versioning applies.
func (c *cache[V]) Persist(ctx context.Context, key string, compute ComputeFunc[V], scope Scope, ttl time.Duration) (V, error) {
	ds := c.scopeStore(scope)
	k := c.names.Key(key)
	if ds != nil {
		if v, ok := c.durableGet(ctx, ds, scope, k); ok {
			return v, nil
		}
	}
	if compute == nil {
		var zero V
		return zero, ErrNilCompute
	}
	v, err := compute(ctx)
	if err != nil {
		c.hooks.ComputeFailed(key, err)
		return v, err
	}
	if ds != nil {
		c.durableSet(ctx, ds, scope, k, v, ttl)
	}
	return v, nil
}

// Cease is Forget against a durable scope.
func (c *cache[V]) Cease(ctx context.Context, key string, scope Scope, def V) V {
	ds := c.scopeStore(scope)
	if ds == nil {
		return def
	}
	k := c.names.Key(key)
	v, ok := c.durableGet(ctx, ds, scope, k)
	if !ok {
		return def
	}
	if _, err := ds.Delete(ctx, k); err != nil {
		c.storeErr("durable_delete", scope.String(), k, err)
	}
	return v
}

// scopeStore returns the store for scope, or nil when it is unset or disabled.
func (c *cache[V]) scopeStore(scope Scope) durable.Store {
	if !c.enabled(CategoryTransient) {
		return nil
	}
	if scope == ScopeShared {
		return c.shared
	}
	return c.local
}

func (c *cache[V]) durableGet(ctx context.Context, ds durable.Store, scope Scope, k string) (V, bool) {
	var zero V
	raw, ok, err := ds.Get(ctx, k)
	if err != nil {
		c.storeErr("durable_get", scope.String(), k, err)
		return zero, false
	}
	if !ok || len(raw) == 0 {
		return zero, false
	}
	v, err := c.codec.Decode(raw)
	if err != nil {
		c.hooks.CorruptEntry(scope.String(), k, "decode")
		return zero, false
	}
	return v, true
}

func (c *cache[V]) durableSet(ctx context.Context, ds durable.Store, scope Scope, k string, v V, ttl time.Duration) {
	b, err := c.codec.Encode(v)
	if err != nil {
		c.log.Warn("value encode failed", Fields{"scope": scope.String(), "key": k, "err": err})
		return
	}
	if ttl < 0 {
		ttl = 0
	}
	ok, err := ds.Set(ctx, k, b, ttl)
	if err != nil {
		c.storeErr("durable_set", scope.String(), k, err)
		return
	}
	if !ok {
		c.hooks.WriteRejected(scope.String(), k)
	}
}
