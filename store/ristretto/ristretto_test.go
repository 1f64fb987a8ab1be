package ristretto

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/vcache/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSetIsVisibleImmediately(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ok, err := s.Set(ctx, "k", []byte("v"), "g", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	got, ok, err := s.Get(ctx, "k", "g", false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	ok, err = s.Delete(ctx, "k", "g")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = s.Get(ctx, "k", "g", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncrement(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for want := int64(1); want <= 3; want++ {
		got, err := s.Increment(ctx, "ver", 1, "g")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := s.Set(ctx, "blob", []byte("abc"), "g", 0)
	require.NoError(t, err)
	_, err = s.Increment(ctx, "blob", 1, "g")
	assert.True(t, errors.Is(err, store.ErrNotInteger))
}

func TestFlush(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Set(ctx, "k", []byte("v"), "g", 0)
	require.NoError(t, err)
	require.NoError(t, s.Flush(ctx))

	_, ok, err := s.Get(ctx, "k", "g", false)
	require.NoError(t, err)
	assert.False(t, ok)
}
