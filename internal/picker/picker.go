// Copyright © 2025 Roknuzzaman Rokon roknuzzamanrokon113@gmail.com
// SPDX-License-Identifier: MIT

// Package picker provides the interactive user selector used by mutation
// commands when no target user is given on the command line.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RoknuzamanRokon/hitactl/internal/api"
)

// CursorMarker is the prefix shown on the selected row.
const CursorMarker = "▸ "

// ErrAborted is returned by Pick when the user quits without selecting.
var ErrAborted = errors.New("selection aborted")

// UsersMsg delivers the fetched user list to the model.
type UsersMsg struct {
	Users []api.User
	Err   error
}

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func keyMap() pickerKeys {
	return pickerKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the Bubble Tea model for the user picker.
type Model struct {
	users    []api.User
	cursor   int
	loading  bool
	spin     spinner.Model
	err      error
	selected *api.User
	keys     pickerKeys
	load     func() ([]api.User, error)
}

// NewModel creates a picker Model in the loading state. The loader is called
// asynchronously from Init.
func NewModel(load func() ([]api.User, error)) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		loading: true,
		spin:    s,
		keys:    keyMap(),
		load:    load,
	}
}

// Selected returns the user picked, or nil if none was.
func (m Model) Selected() *api.User {
	return m.selected
}

// Err returns the load error, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the spinner and kicks off the user fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg {
			users, err := m.load()
			return UsersMsg{Users: users, Err: err}
		},
	)
}

// Update processes messages for the picker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UsersMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, tea.Quit
		}
		m.users = append([]api.User(nil), msg.Users...)
		m.cursor = 0
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case m.loading:
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.users) > 0 {
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.users) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if len(m.users) > 0 {
			m.cursor++
			if m.cursor >= len(m.users) {
				m.cursor = 0
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if len(m.users) > 0 && m.cursor < len(m.users) {
			picked := m.users[m.cursor]
			m.selected = &picked
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// View renders the picker.
func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("%s loading users...\n", m.spin.View())
	}
	if m.err != nil {
		return ""
	}
	if len(m.users) == 0 {
		return "no users found\n"
	}

	var b strings.Builder
	for i, u := range m.users {
		marker := "  "
		if i == m.cursor {
			marker = CursorMarker
		}
		line := fmt.Sprintf("%s%s", marker, u.Email)
		detail := fmt.Sprintf("  %s", u.Role)
		if i == m.cursor {
			b.WriteString(line + detail + "\n")
		} else {
			b.WriteString(line + dimStyle.Render(detail) + "\n")
		}
	}
	b.WriteString(dimStyle.Render("\n↑/↓ move · enter select · q quit") + "\n")
	return b.String()
}

// Pick runs the picker and returns the chosen user. ErrAborted is returned
// when the user quits without making a selection.
func Pick(load func() ([]api.User, error)) (*api.User, error) {
	final, err := tea.NewProgram(NewModel(load)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, ErrAborted
	}
	if m.Err() != nil {
		return nil, m.Err()
	}
	if m.Selected() == nil {
		return nil, ErrAborted
	}

	return m.Selected(), nil
}
