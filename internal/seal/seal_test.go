// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package seal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	doc := []byte(`{"users": [{"email": "anik@hita.example"}]}`)

	sealed, err := Seal(doc, "correct horse")
	require.NoError(t, err)
	assert.True(t, IsSealed(sealed))
	assert.NotContains(t, string(sealed), "anik@hita.example")

	plain, err := Open(sealed, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, doc, plain)
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte(`{"total_users": 10}`), "right")
	require.NoError(t, err)

	_, err = Open(sealed, "wrong")
	assert.Error(t, err)
}

func TestOpenUnsealedDocument(t *testing.T) {
	_, err := Open([]byte(`{"total_users": 10}`), "whatever")
	assert.ErrorIs(t, err, ErrNotSealed)
}

func TestEmptyPassphrase(t *testing.T) {
	_, err := Seal([]byte(`{}`), "")
	assert.ErrorIs(t, err, ErrEmptyPassphrase)

	_, err = Open([]byte(`{}`), "")
	assert.ErrorIs(t, err, ErrEmptyPassphrase)
}

func TestIsSealed(t *testing.T) {
	assert.False(t, IsSealed([]byte(`{"users": []}`)))
	assert.False(t, IsSealed([]byte(`not json`)))

	sealed, err := Seal([]byte(`{}`), "pw")
	require.NoError(t, err)
	assert.True(t, IsSealed(sealed))
}
