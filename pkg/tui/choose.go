package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type choiceItem string

func (i choiceItem) FilterValue() string { return string(i) }

// choiceDelegate renders one choice per line with an arrow cursor.
type choiceDelegate struct {
	theme *Theme
}

func (d choiceDelegate) Height() int                             { return 1 }
func (d choiceDelegate) Spacing() int                            { return 0 }
func (d choiceDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	label, ok := item.(choiceItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprintf(w, "%s %s", d.theme.Cursor.Render("▶"), d.theme.Selected.Render(string(label)))
		return
	}
	fmt.Fprintf(w, "  %s", d.theme.Item.Render(string(label)))
}

// chooseModel is a single-choice prompt. It quits on select or dismiss.
type chooseModel struct {
	list      list.Model
	theme     *Theme
	chosen    int
	dismissed bool
}

func newChooseModel(th *Theme, title string, choices []string, initial int) chooseModel {
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = choiceItem(c)
	}

	l := list.New(items, choiceDelegate{theme: th}, 60, len(choices)+6)
	l.Title = title
	l.Styles.Title = th.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(len(choices) > 20)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.CursorUp = promptKeys.Base.Up
	l.KeyMap.CursorDown = promptKeys.Base.Down
	l.KeyMap.PrevPage = promptKeys.Base.PageUp
	l.KeyMap.NextPage = promptKeys.Base.PageDown
	if initial > 0 && initial < len(choices) {
		l.Select(initial)
	}

	return chooseModel{list: l, theme: th, chosen: -1}
}

func (m chooseModel) Init() tea.Cmd {
	return nil
}

func (m chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := len(m.list.Items()) + 6
		if msg.Height > 2 && msg.Height-2 < height {
			height = msg.Height - 2
		}
		m.list.SetSize(msg.Width, height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, promptKeys.Confirm):
			if len(m.list.Items()) > 0 {
				m.chosen = m.list.Index()
			}
			return m, tea.Quit
		case promptKeys.dismisses(msg):
			m.dismissed = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m chooseModel) View() string {
	if m.chosen >= 0 || m.dismissed {
		return ""
	}
	return m.list.View() + "\n" + helpLine(*m.theme, promptKeys.ShortHelp()) + "\n"
}
