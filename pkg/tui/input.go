package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is a single-line text prompt.
type inputModel struct {
	title     string
	input     textinput.Model
	theme     *Theme
	done      bool
	dismissed bool
}

func newInputModel(th *Theme, title, initial string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = th.Cursor
	ti.TextStyle = th.Selected
	ti.CharLimit = 512
	ti.Width = 60
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return inputModel{title: title, input: ti, theme: th}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.input.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, promptKeys.Confirm):
			m.done = true
			return m, tea.Quit
		case promptKeys.dismisses(msg):
			m.dismissed = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) Value() string {
	return m.input.Value()
}

func (m inputModel) View() string {
	if m.done || m.dismissed {
		return ""
	}
	help := helpLine(*m.theme, []key.Binding{promptKeys.Confirm, promptKeys.Base.Back})
	return m.theme.Title.Render(m.title) + "\n" + m.input.View() + "\n" + help + "\n"
}
