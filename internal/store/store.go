// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// Loader produces the bytes for a cache key. It is invoked only on a miss or
// on a stale entry, and at most once across concurrent callers of Fetch.
type Loader func(ctx context.Context) ([]byte, error)

// Entry is one cached resource. FetchedAt is zero for entries that have been
// invalidated but still hold last-known-good data.
type Entry struct {
	Key       string
	Data      []byte
	FetchedAt time.Time
	TTL       time.Duration
	LastError error
}

// Store is a per-resource cache keyed by logical resource name
// ("users:general", "analytics:general", ...). Instances are constructed and
// injected rather than shared through package state, so tests can run
// isolated stores. Entries live for the process lifetime; Invalidate marks
// them stale without discarding data.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	group   singleflight.Group

	// now is swapped in tests to step time deterministically.
	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Get is a synchronous read with no side effects. The returned Entry is a
// copy; mutating it does not touch the store.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Age returns how old the entry's data is. ok is false when the key has
// never completed a fetch.
func (s *Store) Age(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.FetchedAt.IsZero() {
		return 0, false
	}
	return s.now().Sub(e.FetchedAt), true
}

// Fetch resolves the bytes for key. A fresh entry (age < ttl) is returned
// without invoking the loader. A stale or absent entry invokes the loader,
// with concurrent callers for the same key joined onto a single flight: the
// loader runs once and every caller receives the same result. A failed
// loader leaves prior data untouched, records the error on the entry, and
// the error propagates to all joined callers.
func (s *Store) Fetch(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && !e.FetchedAt.IsZero() && s.now().Sub(e.FetchedAt) < ttl {
		data := e.Data
		s.mu.Unlock()
		log.Debugf("cache hit: %s", key)
		return data, nil
	}
	s.mu.Unlock()

	v, err, shared := s.group.Do(key, func() (any, error) {
		data, err := loader(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		e, ok := s.entries[key]
		if !ok {
			e = &Entry{Key: key}
			s.entries[key] = e
		}
		e.TTL = ttl

		if err != nil {
			// Stale-but-present beats blank: keep whatever is there.
			e.LastError = err
			return nil, err
		}

		e.Data = data
		e.FetchedAt = s.now()
		e.LastError = nil
		return data, nil
	})
	if shared {
		log.Debugf("joined in-flight fetch: %s", key)
	}
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

// Invalidate forces the next Fetch for key to reload, without discarding
// data, so callers keep showing something while revalidating.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		e.FetchedAt = time.Time{}
	}
	s.mu.Unlock()

	// A flight started before the invalidation would otherwise satisfy the
	// next caller with the pre-invalidation result.
	s.group.Forget(key)
}
