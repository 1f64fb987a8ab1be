package vcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unkn0wn-root/vcache/codec"
	"github.com/unkn0wn-root/vcache/durable"
	"github.com/unkn0wn-root/vcache/internal/keys"
	"github.com/unkn0wn-root/vcache/internal/wire"
	"github.com/unkn0wn-root/vcache/store"
	"github.com/unkn0wn-root/vcache/version"
)

type closer interface {
	Close(context.Context) error
}

type cache[V any] struct {
	names    keys.Namer
	store    store.Store
	codec    codec.Codec[V]
	versions version.Counter
	local    durable.Store
	shared   durable.Store
	enabled  Enabler
	flushFn  func(context.Context) error
	log      Logger
	hooks    Hooks
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("vcache: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("vcache: codec is required")
	}

	c := &cache[V]{
		names:   keys.NewNamer(coalesce(opts.Prefix, defaultPrefix)),
		store:   opts.Store,
		codec:   opts.Codec,
		local:   opts.Local,
		shared:  opts.Shared,
		flushFn: opts.FlushFunc,
	}

	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})

	switch {
	case opts.Disabled:
		c.enabled = func(Category) bool { return false }
	case opts.Enabled != nil:
		c.enabled = opts.Enabled
	default:
		c.enabled = AlwaysEnabled
	}

	if opts.Versions != nil {
		c.versions = opts.Versions
	} else {
		c.versions = version.NewStoreCounter(opts.Store, c.names.Version())
	}
	return c, nil
}

func (c *cache[V]) Enabled(cat Category) bool { return c.enabled(cat) }

// Close releases whatever the cache was given that knows how to close.
// All closers run; their errors are joined.
func (c *cache[V]) Close(ctx context.Context) error {
	var errs []error
	for _, v := range []any{c.versions, c.local, c.shared, c.store} {
		if cl, ok := v.(closer); ok {
			if err := cl.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (c *cache[V]) Read(ctx context.Context, key, group string, force bool) (V, bool) {
	var zero V
	if !c.enabled(CategoryObject) || c.names.Reserved(key) {
		return zero, false
	}
	g := c.names.Group(group)

	cur, err := c.versions.Current(ctx, g, force)
	if err != nil {
		c.storeErr("version", g, "", err)
		return zero, false
	}
	if cur == 0 {
		// group never written
		return zero, false
	}

	k := c.names.Key(key)
	raw, ok, err := c.store.Get(ctx, k, g, force)
	if err != nil {
		c.storeErr("get", g, k, err)
		return zero, false
	}
	if !ok {
		return zero, false
	}

	tag, payload, err := wire.Decode(raw)
	if err != nil {
		c.hooks.CorruptEntry(g, k, "frame")
		return zero, false
	}
	if tag != cur {
		c.hooks.StaleEntry(g, k, tag, cur)
		return zero, false
	}
	if len(payload) == 0 {
		c.hooks.CorruptEntry(g, k, "empty")
		return zero, false
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		c.hooks.CorruptEntry(g, k, "decode")
		c.log.Debug("entry decode failed", Fields{"group": g, "key": k, "err": err})
		return zero, false
	}
	return v, true
}

func (c *cache[V]) Write(ctx context.Context, key string, value V, group string, ttl time.Duration) bool {
	if !c.enabled(CategoryObject) {
		return false
	}
	if c.names.Reserved(key) {
		c.log.Warn("write refused: key collides with version counter", Fields{"key": key})
		return false
	}
	g := c.names.Group(group)
	k := c.names.Key(key)

	cur, err := c.versions.Current(ctx, g, false)
	if err != nil {
		c.storeErr("version", g, "", err)
		return false
	}
	if cur == 0 {
		// Not atomic with the Current above: concurrent first writers may both
		// init; last write wins on the counter.
		if cur, err = c.versions.Init(ctx, g); err != nil {
			c.storeErr("version_init", g, "", err)
			return false
		}
		c.log.Debug("group version initialized", Fields{"group": g, "version": cur})
	}

	payload, err := c.codec.Encode(value)
	if err != nil {
		c.log.Warn("value encode failed", Fields{"group": g, "key": k, "err": err})
		return false
	}
	if ttl < 0 {
		ttl = 0
	}
	ok, err := c.store.Set(ctx, k, wire.Encode(cur, payload), g, ttl)
	if err != nil {
		c.storeErr("set", g, k, err)
		return false
	}
	if !ok {
		c.hooks.WriteRejected(g, k)
		c.log.Debug("write rejected by store", entryFields(g, k))
	}
	return ok
}

func (c *cache[V]) Delete(ctx context.Context, key, group string) bool {
	if c.names.Reserved(key) {
		return false
	}
	g := c.names.Group(group)
	k := c.names.Key(key)
	ok, err := c.store.Delete(ctx, k, g)
	if err != nil {
		c.storeErr("delete", g, k, err)
		return false
	}
	return ok
}

// InvalidateGroup orphans every entry in group by bumping its version.
// Entries are left in place.
func (c *cache[V]) InvalidateGroup(ctx context.Context, group string) (uint64, error) {
	g := c.names.Group(group)
	v, err := c.versions.Bump(ctx, g)
	if err != nil {
		oe := &OpError{Op: "bump", Group: g, Err: err}
		c.hooks.StoreError(oe)
		c.log.Error("group invalidation failed", Fields{"group": g, "err": err})
		return 0, oe
	}
	c.log.Debug("group invalidated", Fields{"group": g, "version": v})
	return v, nil
}

func (c *cache[V]) storeErr(op, group, key string, err error) {
	oe := &OpError{Op: op, Group: group, Key: key, Err: err}
	c.hooks.StoreError(oe)
	c.log.Warn("store call failed", Fields{"op": op, "group": group, "key": key, "err": err})
}
