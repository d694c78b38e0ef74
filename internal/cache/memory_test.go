package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreHitAfterPut(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Put(ctx, KindPrice, "2330.TW", []float64{1, 2, 3}, time.Hour)
	require.NoError(t, err)

	var got []float64
	found, err := store.Get(ctx, KindPrice, "2330.TW", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestMemoryStoreMissAfterTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	store := NewMemoryStoreWithClock(func() time.Time { return *clock })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KindPrice, "2330.TW", "payload", time.Hour))

	var got string
	found, err := store.Get(ctx, KindPrice, "2330.TW", &got)
	require.NoError(t, err)
	assert.True(t, found, "entry must be visible before TTL")

	// Advance the simulated clock past the TTL
	later := now.Add(time.Hour + time.Second)
	clock = &later

	found, err = store.Get(ctx, KindPrice, "2330.TW", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired entry must read as a miss")
}

func TestMemoryStoreKindsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KindPrice, "2330", "price-payload", time.Hour))

	var got string
	found, err := store.Get(ctx, KindFlow, "2330", &got)
	require.NoError(t, err)
	assert.False(t, found, "flow kind must not see price entries")
}

func TestMemoryStoreSweep(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := &now
	store := NewMemoryStoreWithClock(func() time.Time { return *clock })
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KindPrice, "2330", "a", time.Minute))
	require.NoError(t, store.Put(ctx, KindPrice, "2317", "b", time.Hour))

	later := now.Add(10 * time.Minute)
	clock = &later

	removed := store.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
}

func TestGetOrFillFetchesOnceUnderConcurrency(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	var fills int32
	fill := func() (interface{}, error) {
		atomic.AddInt32(&fills, 1)
		time.Sleep(10 * time.Millisecond) // widen the race window
		return "payload", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var got string
			err := c.GetOrFill(ctx, KindPrice, "2330.TW", &got, time.Hour, fill)
			assert.NoError(t, err)
			assert.Equal(t, "payload", got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fills), "concurrent misses must fetch once")
}

func TestGetOrFillDoesNotCacheErrors(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	calls := 0
	failing := func() (interface{}, error) {
		calls++
		return nil, assert.AnError
	}

	var got string
	err := c.GetOrFill(ctx, KindPrice, "2330.TW", &got, time.Hour, failing)
	require.Error(t, err)

	// The failed fill must not have poisoned the cache
	err = c.GetOrFill(ctx, KindPrice, "2330.TW", &got, time.Hour, failing)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}
