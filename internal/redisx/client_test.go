package redisx

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// These tests need a live Redis; set TEST_REDIS_ADDR to run them.
func testClient(t *testing.T) (StatusCache, Idempotency, context.Context) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := New(addr)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())
	return StatusCache{RDB: rdb}, Idempotency{RDB: rdb}, ctx
}

func TestStatusCacheKeepsNewest(t *testing.T) {
	cache, _, ctx := testClient(t)
	id := uuid.NewString()
	t.Cleanup(func() { _ = cache.Drop(ctx, id) })

	_, ok, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, cache.Put(ctx, id, CachedStatus{Status: "shipped", UserID: "u", UpdatedAt: now}))
	require.NoError(t, cache.Put(ctx, id, CachedStatus{Status: "processing", UserID: "u", UpdatedAt: now.Add(-time.Minute)}))

	got, ok, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "shipped", got.Status)
	require.True(t, now.Equal(got.UpdatedAt))
}

func TestStatusCacheConcurrentPutsKeepNewest(t *testing.T) {
	cache, _, ctx := testClient(t)
	id := uuid.NewString()
	t.Cleanup(func() { _ = cache.Drop(ctx, id) })

	base := time.Now().UTC().Truncate(time.Microsecond)
	errs := make([]error, 20)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cs := CachedStatus{Status: fmt.Sprintf("s%d", i), UserID: "u", UpdatedAt: base.Add(time.Duration(i) * time.Second)}
			errs[i] = cache.Put(ctx, id, cs)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, ok, err := cache.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "s19", got.Status)
}

func TestIdempotencyAndDedup(t *testing.T) {
	_, idem, ctx := testClient(t)
	user, key := uuid.NewString(), uuid.NewString()

	_, ok, err := idem.Lookup(ctx, user, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, idem.Remember(ctx, user, key, "order-1"))
	id, ok, err := idem.Lookup(ctx, user, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "order-1", id)

	dk := "dedup:test:" + uuid.NewString()
	first, err := MarkOnce(ctx, idem.RDB, dk, time.Minute)
	require.NoError(t, err)
	require.True(t, first)
	again, err := MarkOnce(ctx, idem.RDB, dk, time.Minute)
	require.NoError(t, err)
	require.False(t, again)

	seen, err := Exists(ctx, idem.RDB, dk)
	require.NoError(t, err)
	require.True(t, seen)
}
