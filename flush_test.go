package vcache

import (
	"context"
	"errors"
	"testing"
)

func TestFlushPrefersStoreFlusher(t *testing.T) {
	ctx := context.Background()
	fs := &flushingStore{memStore: newMemStore()}
	fnCalls := 0
	cc := newTestCache(t, fs, func(o *Options[string]) {
		o.FlushFunc = func(context.Context) error { fnCalls++; return nil }
	})

	cc.Write(ctx, "a", "1", "g", 0)
	cc.Flush(ctx)

	if fs.flushed != 1 || fnCalls != 0 {
		t.Fatalf("store flusher should win: flushed=%d fn=%d", fs.flushed, fnCalls)
	}
	if _, ok := cc.Read(ctx, "a", "g", false); ok {
		t.Fatalf("everything should be gone after flush")
	}
}

func TestFlushFallsBackToFunc(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	fnCalls := 0
	cc := newTestCache(t, ms, func(o *Options[string]) {
		o.FlushFunc = func(context.Context) error {
			fnCalls++
			ms.mu.Lock()
			ms.m = make(map[string]memEntry)
			ms.mu.Unlock()
			return nil
		}
	})

	cc.Write(ctx, "a", "1", "g", 0)
	cc.Flush(ctx)
	if fnCalls != 1 {
		t.Fatalf("FlushFunc should run once, ran %d", fnCalls)
	}
	if _, ok := cc.Read(ctx, "a", "g", false); ok {
		t.Fatalf("everything should be gone after flush")
	}
}

func TestFlushUnavailableIsNoop(t *testing.T) {
	ctx := context.Background()
	ms := newMemStore()
	h := &recHooks{}
	cc := newTestCache(t, ms, func(o *Options[string]) { o.Hooks = h })

	cc.Write(ctx, "a", "1", "g", 0)
	cc.Flush(ctx)

	if h.noFlush != 1 {
		t.Fatalf("expected FlushUnavailable, got %d", h.noFlush)
	}
	if got, ok := cc.Read(ctx, "a", "g", false); !ok || got != "1" {
		t.Fatalf("no-op flush must keep data: got=%q ok=%v", got, ok)
	}
}

func TestFlushErrorIsSwallowed(t *testing.T) {
	ctx := context.Background()
	fs := &flushingStore{memStore: newMemStore(), err: errBoom}
	h := &recHooks{}
	cc := newTestCache(t, fs, func(o *Options[string]) { o.Hooks = h })

	cc.Flush(ctx)
	if len(h.storeErr) != 1 || h.storeErr[0].Op != "flush" || !errors.Is(h.storeErr[0], errBoom) {
		t.Fatalf("expected flush OpError, got %v", h.storeErr)
	}
}
