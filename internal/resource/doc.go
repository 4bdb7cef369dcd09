// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package resource binds typed backend resources to the cache store with
// serve-cached-then-revalidate semantics: known data is returned
// immediately, a background fetch brings it up to date, and subscribers hear
// about the outcome. The lifecycle per key is idle -> loading ->
// success/error, re-entered via ForceRefresh.
package resource
