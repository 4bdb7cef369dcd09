// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package store holds last-known-good copies of backend resources with TTL
// freshness and single-flight loading. It is the authority for what "fresh",
// "stale" and "in flight" mean; the resource package builds the
// serve-cached-then-revalidate behavior on top of it.
package store
