// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	left := []byte(`{"users": [{"email": "anik@hita.example", "points_balance": 120}]}`)

	t.Run("identical documents", func(t *testing.T) {
		out, changed, err := Diff(left, left, false)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, out)
	})

	t.Run("changed value", func(t *testing.T) {
		right := []byte(`{"users": [{"email": "anik@hita.example", "points_balance": 90}]}`)
		out, changed, err := Diff(left, right, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Contains(t, out, "points_balance")
	})

	t.Run("added user", func(t *testing.T) {
		right := []byte(`{"users": [
			{"email": "anik@hita.example", "points_balance": 120},
			{"email": "mitu@hita.example", "points_balance": 0}
		]}`)
		out, changed, err := Diff(left, right, false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Contains(t, out, "mitu@hita.example")
	})

	t.Run("malformed document", func(t *testing.T) {
		_, _, err := Diff(left, []byte(`{not json`), false)
		assert.Error(t, err)
	})
}

func TestDiffDeltas(t *testing.T) {
	left := []byte(`{"total_users": 10}`)
	right := []byte(`{"total_users": 12}`)

	out, changed, err := DiffDeltas(left, right)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out, "total_users")

	_, changed, err = DiffDeltas(left, left)
	require.NoError(t, err)
	assert.False(t, changed)
}
