package version

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unkn0wn-root/vcache/store"
	"github.com/unkn0wn-root/vcache/store/lru"
)

func newStoreCounter(t *testing.T) (*StoreCounter, *lru.Store) {
	t.Helper()
	s, err := lru.New(64)
	if err != nil {
		t.Fatal(err)
	}
	return NewStoreCounter(s, "app_version"), s
}

func TestStoreCounterLifecycle(t *testing.T) {
	ctx := context.Background()
	c, s := newStoreCounter(t)

	if v, err := c.Current(ctx, "app_g", false); err != nil || v != 0 {
		t.Fatalf("fresh group: v=%d err=%v", v, err)
	}
	if v, err := c.Init(ctx, "app_g"); err != nil || v != 1 {
		t.Fatalf("Init: v=%d err=%v", v, err)
	}
	raw, ok, _ := s.Get(ctx, "app_version", "app_g", false)
	if !ok || string(raw) != "1" {
		t.Fatalf("counter should be stored as decimal in the group, got %q ok=%v", raw, ok)
	}
	for want := uint64(2); want <= 3; want++ {
		if v, err := c.Bump(ctx, "app_g"); err != nil || v != want {
			t.Fatalf("Bump: v=%d err=%v want %d", v, err, want)
		}
	}
	if v, _ := c.Current(ctx, "app_g", true); v != 3 {
		t.Fatalf("Current after bumps: %d", v)
	}
	if v, _ := c.Current(ctx, "app_other", false); v != 0 {
		t.Fatalf("groups must be independent, got %d", v)
	}
}

func TestStoreCounterBumpFromMissing(t *testing.T) {
	ctx := context.Background()
	c, _ := newStoreCounter(t)

	if v, err := c.Bump(ctx, "app_g"); err != nil || v != 1 {
		t.Fatalf("Bump on missing counter: v=%d err=%v", v, err)
	}
}

func TestStoreCounterGarbage(t *testing.T) {
	ctx := context.Background()
	c, s := newStoreCounter(t)

	_, _ = s.Set(ctx, "app_version", []byte("nope"), "app_g", 0)
	if _, err := c.Current(ctx, "app_g", false); !errors.Is(err, store.ErrNotInteger) {
		t.Fatalf("expected ErrNotInteger, got %v", err)
	}
}

type refusingStore struct{ store.Store }

func (refusingStore) Set(context.Context, string, []byte, string, time.Duration) (bool, error) {
	return false, nil
}

func TestStoreCounterInitRejected(t *testing.T) {
	_, s := newStoreCounter(t)
	c := NewStoreCounter(refusingStore{s}, "app_version")
	if _, err := c.Init(context.Background(), "app_g"); !errors.Is(err, ErrInitRejected) {
		t.Fatalf("expected ErrInitRejected, got %v", err)
	}
}
