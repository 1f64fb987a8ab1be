package version

import (
	"context"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/vcache/store"
)

var ErrInitRejected = errors.New("version: store refused counter init")

// StoreCounter keeps each group's counter in the primary store under a fixed
// key inside that group. Init is a plain Set: two writers racing on an empty
// group both write 1 and the last one wins.
type StoreCounter struct {
	s   store.Store
	key string
}

var _ Counter = (*StoreCounter)(nil)

func NewStoreCounter(s store.Store, key string) *StoreCounter {
	return &StoreCounter{s: s, key: key}
}

func (c *StoreCounter) Current(ctx context.Context, group string, force bool) (uint64, error) {
	raw, ok, err := c.s.Get(ctx, c.key, group, force)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := store.ParseCounter(raw)
	if err != nil {
		return 0, fmt.Errorf("version parse %s: %w", group, err)
	}
	if n < 0 {
		return 0, nil
	}
	return uint64(n), nil
}

func (c *StoreCounter) Init(ctx context.Context, group string) (uint64, error) {
	ok, err := c.s.Set(ctx, c.key, store.FormatCounter(1), group, 0)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInitRejected
	}
	return 1, nil
}

func (c *StoreCounter) Bump(ctx context.Context, group string) (uint64, error) {
	n, err := c.s.Increment(ctx, c.key, 1, group)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("version bump %s: non-positive counter %d", group, n)
	}
	return uint64(n), nil
}
