// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	config := DefaultCacheConfig()
	config.CleanupInterval = time.Minute
	c := NewMemoryCache(config)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "posts:list", []byte(`[{"id":1}]`), time.Minute))

	value, err := c.Get(ctx, "posts:list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), value)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, err := c.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "ephemeral", []byte("x"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := c.Get(ctx, "ephemeral")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	exists, err := c.Exists(ctx, "ephemeral")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	require.NoError(t, c.Set(ctx, "k", []byte("original"), time.Minute))

	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	value[0] = 'X'

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryCache_EvictionUnderMemoryPressure(t *testing.T) {
	ctx := context.Background()
	config := DefaultCacheConfig()
	config.MaxMemory = 64
	config.CleanupInterval = time.Minute
	c := NewMemoryCache(config)
	t.Cleanup(func() { c.Close() })

	payload := make([]byte, 30)
	require.NoError(t, c.Set(ctx, "a", payload, time.Minute))
	require.NoError(t, c.Set(ctx, "b", payload, 2*time.Minute))
	require.NoError(t, c.Set(ctx, "c", payload, 3*time.Minute))

	stats := c.Stats()
	assert.LessOrEqual(t, stats.MemoryUsage, int64(64))
	assert.Greater(t, stats.Evictions, int64(0))
}

func TestMemoryCache_ClosedCacheRejectsOperations(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), time.Minute), ErrCacheDisabled)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheDisabled)
}

func TestNewCache_InvalidBackend(t *testing.T) {
	config := DefaultCacheConfig()
	config.Backend = CacheType("memcached")

	_, err := NewCache(config)
	assert.ErrorIs(t, err, ErrInvalidCacheType)
}

func TestNewCache_MemoryBackend(t *testing.T) {
	config := DefaultCacheConfig()
	config.CleanupInterval = time.Minute

	c, err := NewCache(config)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}
