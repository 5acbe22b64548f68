package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amezghal/careergate/internal/cache"
)

func TestNewCleanerRequiresStore(t *testing.T) {
	_, err := NewCleaner(nil, nil, 90)
	require.Error(t, err)
}

func TestRunOnceSweepsExpiredCacheEntries(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "stale", []byte("1"), time.Nanosecond))
	require.NoError(t, store.Set(ctx, "fresh", []byte("2"), time.Hour))
	time.Sleep(5 * time.Millisecond)

	cleaner, err := NewCleaner(store, nil, 90)
	require.NoError(t, err)

	require.NoError(t, cleaner.RunOnce(ctx))

	_, ok, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = store.Get(ctx, "stale")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStartAndStop(t *testing.T) {
	cleaner, err := NewCleaner(cache.NewMemoryStore(), nil, 90)
	require.NoError(t, err)

	require.NoError(t, cleaner.Start())
	cleaner.Stop()
}

type plainStore struct{ cache.Store }

func TestRunOnceToleratesNonSweepingStore(t *testing.T) {
	// A store without Sweep (Redis expires keys itself) is simply skipped.
	cleaner, err := NewCleaner(plainStore{cache.NewMemoryStore()}, nil, 0)
	require.NoError(t, err)
	require.NoError(t, cleaner.RunOnce(context.Background()))
}
