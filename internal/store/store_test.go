// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(data []byte, err error, calls *atomic.Int64) Loader {
	return func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return data, err
	}
}

func TestFetchColdCallsLoaderOnce(t *testing.T) {
	s := New()
	var calls atomic.Int64

	got, err := s.Fetch(context.Background(), "users:general", time.Minute,
		countingLoader([]byte(`[1,2]`), nil, &calls))

	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
	assert.EqualValues(t, 1, calls.Load())

	e, ok := s.Get("users:general")
	require.True(t, ok)
	assert.Equal(t, []byte(`[1,2]`), e.Data)
	assert.False(t, e.FetchedAt.IsZero())
}

func TestFetchFreshSkipsLoader(t *testing.T) {
	s := New()
	var calls atomic.Int64
	loader := countingLoader([]byte(`[1]`), nil, &calls)

	_, err := s.Fetch(context.Background(), "k", time.Minute, loader)
	require.NoError(t, err)

	// Second fetch inside the TTL window must not touch the loader.
	got, err := s.Fetch(context.Background(), "k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchStaleReloads(t *testing.T) {
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	var calls atomic.Int64
	loader := countingLoader([]byte(`[1]`), nil, &calls)

	_, err := s.Fetch(context.Background(), "k", time.Minute, loader)
	require.NoError(t, err)

	// Step past the TTL.
	now = now.Add(2 * time.Minute)

	_, err = s.Fetch(context.Background(), "k", time.Minute, loader)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestConcurrentFetchesShareOneFlight(t *testing.T) {
	s := New()

	var calls atomic.Int64
	release := make(chan struct{})
	loader := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte(`"shared"`), nil
	}

	const n = 16
	results := make([][]byte, n)
	errs := make([]error, n)

	var start, done sync.WaitGroup
	start.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Done()
			start.Wait()
			results[i], errs[i] = s.Fetch(context.Background(), "k", time.Minute, loader)
		}(i)
	}

	// Let all goroutines pile onto the flight before it resolves.
	start.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.EqualValues(t, 1, calls.Load(), "loader must run exactly once")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []byte(`"shared"`), results[i])
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	s := New()
	var calls atomic.Int64
	loader := countingLoader([]byte(`[1]`), nil, &calls)

	_, err := s.Fetch(context.Background(), "k", time.Hour, loader)
	require.NoError(t, err)

	s.Invalidate("k")

	// Data survives the invalidation so views keep showing something.
	e, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`[1]`), e.Data)
	assert.True(t, e.FetchedAt.IsZero())

	_, err = s.Fetch(context.Background(), "k", time.Hour, loader)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFailedLoaderKeepsPriorData(t *testing.T) {
	s := New()
	boom := errors.New("backend down")

	_, err := s.Fetch(context.Background(), "k", time.Minute,
		func(ctx context.Context) ([]byte, error) { return []byte(`[1,2]`), nil })
	require.NoError(t, err)

	s.Invalidate("k")

	_, err = s.Fetch(context.Background(), "k", time.Minute,
		func(ctx context.Context) ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	e, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`[1,2]`), e.Data, "stale data must survive a failed reload")
	assert.ErrorIs(t, e.LastError, boom)
}

func TestFailedLoaderPropagatesToAllJoinedCallers(t *testing.T) {
	s := New()
	boom := errors.New("backend down")

	release := make(chan struct{})
	loader := func(ctx context.Context) ([]byte, error) {
		<-release
		return nil, boom
	}

	const n = 4
	errs := make([]error, n)
	var done sync.WaitGroup
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			_, errs[i] = s.Fetch(context.Background(), "k", time.Minute, loader)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	for i := 0; i < n; i++ {
		assert.ErrorIs(t, errs[i], boom)
	}
}

func TestAge(t *testing.T) {
	s := New()
	now := time.Now()
	s.now = func() time.Time { return now }

	_, ok := s.Age("k")
	assert.False(t, ok)

	_, err := s.Fetch(context.Background(), "k", time.Minute,
		func(ctx context.Context) ([]byte, error) { return []byte(`1`), nil })
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	age, ok := s.Age("k")
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, age)
}
