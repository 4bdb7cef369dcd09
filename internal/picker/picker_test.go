// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package picker

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
)

func sampleUsers() []api.User {
	return []api.User{
		{ID: 1, Email: "anik@hita.example", Role: "general"},
		{ID: 2, Email: "mitu@hita.example", Role: "admin"},
		{ID: 3, Email: "zia@hita.example", Role: "general"},
	}
}

func loadedModel(users []api.User) Model {
	m := NewModel(func() ([]api.User, error) { return users, nil })
	next, _ := m.Update(UsersMsg{Users: users})
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPickerLoadingView(t *testing.T) {
	m := NewModel(func() ([]api.User, error) { return nil, nil })
	assert.Contains(t, m.View(), "loading")
}

func TestPickerNavigationWraps(t *testing.T) {
	m := loadedModel(sampleUsers())

	next, _ := m.Update(keyPress("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(keyPress("j"))
	next, _ = next.(Model).Update(keyPress("j"))
	m = next.(Model)
	assert.Equal(t, 0, m.cursor, "down past the end wraps to the top")

	next, _ = m.Update(keyPress("k"))
	m = next.(Model)
	assert.Equal(t, 2, m.cursor, "up from the top wraps to the bottom")
}

func TestPickerSelect(t *testing.T) {
	m := loadedModel(sampleUsers())

	next, _ := m.Update(keyPress("j"))
	next, cmd := next.(Model).Update(keyPress("enter"))
	m = next.(Model)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "mitu@hita.example", m.Selected().Email)
	require.NotNil(t, cmd, "select should quit the program")
}

func TestPickerQuitWithoutSelection(t *testing.T) {
	m := loadedModel(sampleUsers())

	next, cmd := m.Update(keyPress("q"))
	m = next.(Model)

	assert.Nil(t, m.Selected())
	require.NotNil(t, cmd)
}

func TestPickerLoadError(t *testing.T) {
	m := NewModel(func() ([]api.User, error) { return nil, errors.New("boom") })

	next, cmd := m.Update(UsersMsg{Err: errors.New("boom")})
	m = next.(Model)

	assert.Error(t, m.Err())
	require.NotNil(t, cmd, "load failure should quit the program")
}

func TestPickerViewMarksCursor(t *testing.T) {
	m := loadedModel(sampleUsers())

	view := m.View()
	lines := strings.Split(view, "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], CursorMarker))
	assert.Contains(t, lines[0], "anik@hita.example")
}

func TestPickerEmptyList(t *testing.T) {
	m := loadedModel(nil)
	assert.Contains(t, m.View(), "no users")

	next, cmd := m.Update(keyPress("enter"))
	m = next.(Model)
	assert.Nil(t, m.Selected())
	assert.Nil(t, cmd)
}
