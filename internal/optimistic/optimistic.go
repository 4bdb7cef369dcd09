// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package optimistic composes mutations as explicit stage/commit/rollback
// steps. A view stages the hoped-for state, the commit runs exactly once,
// and a failed commit restores the prior state instead of leaving a
// half-applied view behind.
package optimistic

import "context"

// Mutation describes one optimistic update over a value of type T.
type Mutation[T any] struct {
	// Current is the state the view holds before the mutation.
	Current T
	// Stage produces the optimistic state shown while the commit is in
	// flight.
	Stage func(T) T
	// Commit performs the backend call and returns the authoritative state.
	Commit func(context.Context) (T, error)
}

// Result reports how a mutation ended.
type Result int

const (
	Committed Result = iota
	RolledBack
)

// Run executes the mutation. onApply, when non-nil, is invoked with the
// staged state before the commit and with the final state after it — the
// final call is the rollback when the commit fails. The returned value is
// authoritative: the committed state on success, the original on failure.
func (m Mutation[T]) Run(ctx context.Context, onApply func(T)) (T, Result, error) {
	staged := m.Current
	if m.Stage != nil {
		staged = m.Stage(m.Current)
	}
	if onApply != nil {
		onApply(staged)
	}

	committed, err := m.Commit(ctx)
	if err != nil {
		if onApply != nil {
			onApply(m.Current)
		}
		return m.Current, RolledBack, err
	}

	if onApply != nil {
		onApply(committed)
	}
	return committed, Committed, nil
}
