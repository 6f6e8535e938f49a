package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore()
	store.now = clock.Now
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins, replay loses", func(t *testing.T) {
		store, _ := newTestStore(t)

		isNew, err := store.MarkProcessed(ctx, "req-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "req-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("key is reusable after expiry", func(t *testing.T) {
		store, clock := newTestStore(t)

		_, err := store.MarkProcessed(ctx, "req-2", time.Minute)
		require.NoError(t, err)
		clock.Advance(time.Minute)

		isNew, err := store.MarkProcessed(ctx, "req-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "req", time.Minute)
	require.NoError(t, err)
	processed, err = store.IsProcessed(ctx, "req")
	require.NoError(t, err)
	assert.True(t, processed)

	clock.Advance(2 * time.Minute)
	processed, err = store.IsProcessed(ctx, "req")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.MarkProcessed(ctx, "req", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "req"))

	isNew, err := store.MarkProcessed(ctx, "req", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)

	require.NoError(t, store.Release(ctx, "never-marked"))
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	_, _ = store.MarkProcessed(ctx, "short-1", time.Second)
	_, _ = store.MarkProcessed(ctx, "short-2", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 3, store.Size())

	clock.Advance(time.Minute)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const workers = 100
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := store.MarkProcessed(ctx, "same-key", time.Hour)
			results <- err == nil && isNew
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for ok := range results {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
