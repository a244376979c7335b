package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/core/tui/keymap"
)

// promptKeyMap extends the grove base keymap. Confirm shadows the base
// binding and Interrupt replaces Quit so that "y" and "q" stay typeable.
type promptKeyMap struct {
	keymap.Base
	Confirm   key.Binding
	Interrupt key.Binding
}

var promptKeys = promptKeyMap{
	Base: keymap.NewBase(),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "back"),
	),
}

func (k promptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Base.Up, k.Base.Down, k.Confirm, k.Base.Back}
}

// dismisses reports whether msg backs out of a prompt.
func (k promptKeyMap) dismisses(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Base.Back) || key.Matches(msg, k.Interrupt)
}

// helpLine renders bindings as "key action" pairs.
func helpLine(th Theme, bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+th.Muted.Render(h.Desc))
	}
	return th.Muted.Render(strings.Join(parts, " • "))
}
