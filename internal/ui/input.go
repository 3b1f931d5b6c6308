package ui

import (
	"strings"
	"unicode"

	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/atomicstack/runpop/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the launcher key bindings.
type KeyMap struct {
	Quit      key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Confirm   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	}
}

func (m *Model) updatePromptCursor(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.promptCursor, cmd = m.promptCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	ev := m.translateKey(keyMsg)
	events.Input.Key(keyMsg.String(), ev.String())
	if m.bridge != nil {
		m.bridge.Send(ev)
	}
	return nil
}

// translateKey maps a terminal key press onto the abstract event set.
// Anything the launcher does not react to becomes KeyDown(KeyOther).
func (m *Model) translateKey(msg tea.KeyMsg) state.Event {
	if msg.Paste {
		if text := printable(msg.Runes); text != "" {
			return state.TextInput(text)
		}
		return state.KeyDown(state.KeyOther)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return state.Quit()
	case key.Matches(msg, m.keys.Cancel):
		return state.KeyDown(state.KeyEscape)
	case key.Matches(msg, m.keys.Backspace):
		return state.KeyDown(state.KeyBackspace)
	case key.Matches(msg, m.keys.Confirm):
		return state.KeyDown(state.KeyReturn)
	}
	switch msg.Type {
	case tea.KeySpace:
		return state.TextInput(" ")
	case tea.KeyRunes:
		if msg.Alt {
			return state.KeyDown(state.KeyOther)
		}
		if text := printable(msg.Runes); text != "" {
			return state.TextInput(text)
		}
	}
	return state.KeyDown(state.KeyOther)
}

// printable drops control characters, so a pasted trailing newline does not
// end up in the query.
func printable(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
