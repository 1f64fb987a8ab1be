package vcache

import (
	"context"

	"github.com/unkn0wn-root/vcache/store"
)

// Flush drops everything in the primary store, every group and every version
// counter included. Best effort: failures are logged, never returned.
func (c *cache[V]) Flush(ctx context.Context) {
	var err error
	switch f, ok := c.store.(store.Flusher); {
	case ok:
		err = f.Flush(ctx)
	case c.flushFn != nil:
		err = c.flushFn(ctx)
	default:
		c.hooks.FlushUnavailable()
		c.log.Debug("flush unavailable", nil)
		return
	}
	if err != nil {
		c.storeErr("flush", "", "", err)
		return
	}
	c.log.Info("primary store flushed", nil)
}
