// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/RoknuzamanRokon/hitactl/internal/store"
)

// Snapshot is what a view renders for a resource at one instant.
// FromCache is true when Data came from an entry older than the
// currently-resolving (or just-resolved) fetch; Age is how old that data is,
// computed at read time rather than by a ticking timer.
type Snapshot[T any] struct {
	Data      T
	Err       error
	Loading   bool
	FromCache bool
	Age       time.Duration
}

// Resource binds one logical backend resource to an injected Store. Get
// serves last-known-good data immediately and revalidates in the background;
// ForceRefresh surfaces the same transitions as a cold fetch. Values cross
// the store as JSON, which keeps the store byte-oriented and the binding
// typed.
type Resource[T any] struct {
	store *store.Store
	key   string
	ttl   time.Duration
	load  func(context.Context) (T, error)

	mu       sync.Mutex
	watchers map[int]chan Snapshot[T]
	nextID   int
}

// New binds key to the given loader and TTL on st.
func New[T any](st *store.Store, key string, ttl time.Duration, load func(context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{
		store:    st,
		key:      key,
		ttl:      ttl,
		load:     load,
		watchers: make(map[int]chan Snapshot[T]),
	}
}

// Key returns the store key this resource is bound to.
func (r *Resource[T]) Key() string { return r.key }

// Get returns the current snapshot. With a known entry the call returns
// immediately (FromCache=true) and a background revalidation is kicked off;
// its outcome reaches Watch subscribers. With no entry the call blocks on
// the fetch, so the first paint already has data or an error.
func (r *Resource[T]) Get(ctx context.Context) Snapshot[T] {
	if e, ok := r.store.Get(r.key); ok && len(e.Data) > 0 {
		snap := r.fromEntry(e)
		go r.revalidate()
		return snap
	}

	data, err := r.store.Fetch(ctx, r.key, r.ttl, r.bytesLoader())
	if err != nil {
		return Snapshot[T]{Err: err}
	}
	return r.decode(data, false, 0)
}

// ForceRefresh invalidates the entry and fetches, resolving once the
// refreshed snapshot is applied. On failure the prior data stays visible:
// the returned snapshot keeps it with FromCache=true and Err set.
func (r *Resource[T]) ForceRefresh(ctx context.Context) Snapshot[T] {
	r.store.Invalidate(r.key)

	data, err := r.store.Fetch(ctx, r.key, r.ttl, r.bytesLoader())
	if err != nil {
		snap := r.staleWithError(err)
		r.notify(snap)
		return snap
	}

	snap := r.decode(data, false, 0)
	r.notify(snap)
	return snap
}

// Watch subscribes to snapshots produced by background revalidations and
// refreshes. The cancel func detaches the subscriber; after it returns the
// channel receives nothing further, which is the unmount guard: the fetch
// itself still runs to completion and updates the store.
func (r *Resource[T]) Watch() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 8)

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.watchers[id] = ch
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
	}
	return ch, cancel
}

// revalidate runs detached from the caller: an unmounted view must not
// cancel a revalidation the store has already promised.
func (r *Resource[T]) revalidate() {
	before, _ := r.store.Get(r.key)

	data, err := r.store.Fetch(context.Background(), r.key, r.ttl, r.bytesLoader())
	if err != nil {
		log.Debugf("background refresh failed for %s: %v", r.key, err)
		r.notify(r.staleWithError(err))
		return
	}

	after, _ := r.store.Get(r.key)
	if after.FetchedAt.Equal(before.FetchedAt) {
		// Entry was fresh; nothing hit the network and there is nothing new
		// to deliver.
		return
	}

	r.notify(r.decode(data, false, 0))
}

func (r *Resource[T]) bytesLoader() store.Loader {
	return func(ctx context.Context) ([]byte, error) {
		v, err := r.load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
}

func (r *Resource[T]) fromEntry(e store.Entry) Snapshot[T] {
	var age time.Duration
	if !e.FetchedAt.IsZero() {
		age = time.Since(e.FetchedAt)
	}
	return r.decode(e.Data, true, age)
}

func (r *Resource[T]) staleWithError(err error) Snapshot[T] {
	if e, ok := r.store.Get(r.key); ok && len(e.Data) > 0 {
		snap := r.fromEntry(e)
		snap.Err = err
		return snap
	}
	return Snapshot[T]{Err: err}
}

func (r *Resource[T]) decode(data []byte, fromCache bool, age time.Duration) Snapshot[T] {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return Snapshot[T]{Err: err, FromCache: fromCache, Age: age}
	}
	return Snapshot[T]{Data: v, FromCache: fromCache, Age: age}
}

func (r *Resource[T]) notify(snap Snapshot[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.watchers {
		select {
		case ch <- snap:
		default:
			// Slow subscriber; drop rather than block the fetch path.
		}
	}
}
