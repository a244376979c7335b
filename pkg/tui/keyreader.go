package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/prefs/pkg/hotkey"
)

// ErrInterrupted is returned by KeyReader when the user presses Ctrl+C.
var ErrInterrupted = errors.New("tui: interrupted")

// keyModel waits for one key press.
type keyModel struct {
	hint        string
	theme       *Theme
	press       hotkey.KeyPress
	got         bool
	interrupted bool
}

func (m keyModel) Init() tea.Cmd {
	return nil
}

func (m keyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if km.Type == tea.KeyCtrlC {
		m.interrupted = true
		return m, tea.Quit
	}
	kp, ok := hotkey.FromTea(km)
	if !ok {
		return m, nil
	}
	m.press = kp
	m.got = true
	return m, tea.Quit
}

func (m keyModel) View() string {
	if m.got || m.interrupted {
		return ""
	}
	return m.theme.Muted.Render(m.hint) + "\n"
}

// KeyReader reads single key presses from the terminal.
type KeyReader struct {
	r    *Renderer
	hint string
}

// ReadKey blocks until a key is pressed. Ctrl+C returns ErrInterrupted.
func (k *KeyReader) ReadKey(ctx context.Context) (hotkey.KeyPress, error) {
	m := keyModel{hint: k.hint, theme: &k.r.theme}
	final, err := k.r.run(ctx, m)
	if err != nil {
		return hotkey.KeyPress{}, err
	}
	res := final.(keyModel)
	if res.interrupted {
		return hotkey.KeyPress{}, ErrInterrupted
	}
	if !res.got {
		return hotkey.KeyPress{}, fmt.Errorf("tui: no key read")
	}
	k.r.logger.WithField("key", res.press.String()).Debug("Key read")
	return res.press, nil
}
