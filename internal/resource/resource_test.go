// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package resource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoknuzamanRokon/hitactl/internal/store"
)

type user struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

func TestColdGetBlocksAndReturnsData(t *testing.T) {
	st := store.New()
	r := New(st, "users:list", time.Minute, func(ctx context.Context) ([]user, error) {
		return []user{{1, "a@x"}, {2, "b@x"}}, nil
	})

	snap := r.Get(context.Background())
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Data, 2)
	assert.False(t, snap.FromCache, "cold fetch is not cached data")
}

func TestColdGetFailureYieldsErrorSnapshot(t *testing.T) {
	st := store.New()
	boom := errors.New("backend down")
	r := New(st, "users:list", time.Minute, func(ctx context.Context) ([]user, error) {
		return nil, boom
	})

	snap := r.Get(context.Background())
	assert.ErrorIs(t, snap.Err, boom)
	assert.Empty(t, snap.Data)
}

func TestWarmGetServesCacheImmediately(t *testing.T) {
	st := store.New()
	var calls atomic.Int64
	r := New(st, "users:list", time.Hour, func(ctx context.Context) ([]user, error) {
		calls.Add(1)
		return []user{{1, "a@x"}}, nil
	})

	// Prime the cache.
	_ = r.Get(context.Background())
	require.EqualValues(t, 1, calls.Load())

	snap := r.Get(context.Background())
	require.NoError(t, snap.Err)
	assert.True(t, snap.FromCache)
	assert.Len(t, snap.Data, 1)

	// Entry was fresh, so the background revalidation must not have gone to
	// the network.
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load())
}

func TestForceRefreshGrowsDataset(t *testing.T) {
	st := store.New()
	var calls atomic.Int64
	r := New(st, "users:list", time.Hour, func(ctx context.Context) ([]user, error) {
		if calls.Add(1) == 1 {
			return []user{{1, "a@x"}, {2, "b@x"}}, nil
		}
		return []user{{1, "a@x"}, {2, "b@x"}, {3, "c@x"}}, nil
	})

	first := r.Get(context.Background())
	require.NoError(t, first.Err)
	assert.Len(t, first.Data, 2)

	// During the refresh window the cached read still flags itself as such.
	cached, ok := st.Get("users:list")
	require.True(t, ok)
	assert.NotEmpty(t, cached.Data)

	refreshed := r.ForceRefresh(context.Background())
	require.NoError(t, refreshed.Err)
	assert.Len(t, refreshed.Data, 3)
	assert.False(t, refreshed.FromCache, "refreshed data is no longer cached data")
	assert.EqualValues(t, 2, calls.Load())
}

func TestForceRefreshFailureKeepsStaleData(t *testing.T) {
	st := store.New()
	boom := errors.New("network unreachable")
	var calls atomic.Int64
	r := New(st, "users:list", time.Hour, func(ctx context.Context) ([]user, error) {
		if calls.Add(1) == 1 {
			return []user{{1, "a@x"}, {2, "b@x"}}, nil
		}
		return nil, boom
	})

	first := r.Get(context.Background())
	require.NoError(t, first.Err)

	snap := r.ForceRefresh(context.Background())
	assert.ErrorIs(t, snap.Err, boom)
	assert.Len(t, snap.Data, 2, "prior data must remain visible")
	assert.True(t, snap.FromCache, "a failed refresh leaves the view on cached data")
}

func TestBackgroundRevalidationNotifiesWatcher(t *testing.T) {
	st := store.New()

	var calls atomic.Int64
	r := New(st, "users:list", time.Minute, func(ctx context.Context) ([]user, error) {
		if calls.Add(1) == 1 {
			return []user{{1, "a@x"}}, nil
		}
		return []user{{1, "a@x"}, {2, "b@x"}}, nil
	})

	_ = r.Get(context.Background())

	// Mark the entry stale so the next Get revalidates in the background.
	st.Invalidate("users:list")

	ch, cancel := r.Watch()
	defer cancel()

	snap := r.Get(context.Background())
	require.NoError(t, snap.Err)
	assert.True(t, snap.FromCache, "stale entry still serves immediately")
	assert.Len(t, snap.Data, 1)

	select {
	case fresh := <-ch:
		require.NoError(t, fresh.Err)
		assert.False(t, fresh.FromCache)
		assert.Len(t, fresh.Data, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no revalidation snapshot delivered")
	}
}

func TestCanceledWatcherHearsNothing(t *testing.T) {
	st := store.New()
	r := New(st, "users:list", time.Hour, func(ctx context.Context) ([]user, error) {
		return []user{{1, "a@x"}}, nil
	})

	ch, cancel := r.Watch()
	cancel()

	_ = r.ForceRefresh(context.Background())

	select {
	case <-ch:
		t.Fatal("canceled watcher received a snapshot")
	default:
	}
}

func TestConcurrentGetsShareOneLoad(t *testing.T) {
	st := store.New()
	var calls atomic.Int64
	release := make(chan struct{})
	r := New(st, "users:list", time.Hour, func(ctx context.Context) ([]user, error) {
		calls.Add(1)
		<-release
		return []user{{1, "a@x"}}, nil
	})

	const n = 8
	snaps := make([]Snapshot[[]user], n)
	var done sync.WaitGroup
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			snaps[i] = r.Get(context.Background())
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, calls.Load(), "all mounts share one network call")
	for i := 0; i < n; i++ {
		require.NoError(t, snaps[i].Err)
		assert.Len(t, snaps[i].Data, 1)
	}
}
