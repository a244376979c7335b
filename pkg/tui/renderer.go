package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	coretheme "github.com/grovetools/core/tui/theme"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/sirupsen/logrus"
)

var _ editor.Renderer = (*Renderer)(nil)

// Renderer implements editor.Renderer with short-lived bubbletea programs,
// one per prompt.
type Renderer struct {
	in     io.Reader
	out    io.Writer
	theme  Theme
	logger *logrus.Entry
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithInput sets the terminal input. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(rd *Renderer) { rd.in = r }
}

// WithOutput sets the terminal output. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(rd *Renderer) { rd.out = w }
}

// WithTheme selects the initial theme by name. Unknown names keep the default.
func WithTheme(name string) Option {
	return func(rd *Renderer) {
		if th, ok := LookupTheme(name); ok {
			rd.theme = th
		}
	}
}

// NewRenderer creates a terminal renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		out:    os.Stdout,
		theme:  DefaultTheme,
		logger: logging.NewLogger("tui"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// Apply switches to the named theme.
func (r *Renderer) Apply(name string) error {
	th, ok := LookupTheme(name)
	if !ok {
		return fmt.Errorf("tui: unknown theme %q", name)
	}
	r.theme = th
	r.logger.WithField("theme", th.Name).Debug("Theme applied")
	return nil
}

// KeyReader returns a reader for host-loop key presses sharing this
// renderer's terminal and theme.
func (r *Renderer) KeyReader(hint string) *KeyReader {
	return &KeyReader{r: r, hint: hint}
}

func (r *Renderer) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(r.out)}
	if r.in != nil {
		opts = append(opts, tea.WithInput(r.in))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", editor.ErrPrompt, err)
	}
	return final, nil
}

// Choose runs a single-choice prompt.
func (r *Renderer) Choose(ctx context.Context, title string, choices []string) (int, error) {
	final, err := r.run(ctx, newChooseModel(&r.theme, title, choices, 0))
	if err != nil {
		return 0, err
	}
	m := final.(chooseModel)
	if m.dismissed || m.chosen < 0 {
		return 0, editor.ErrDismissed
	}
	return m.chosen, nil
}

// Input runs a free-text prompt.
func (r *Renderer) Input(ctx context.Context, title, initial string) (string, error) {
	final, err := r.run(ctx, newInputModel(&r.theme, title, initial))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.dismissed {
		return "", editor.ErrDismissed
	}
	return m.Value(), nil
}

// Table prints a settings table.
func (r *Renderer) Table(title string, rows []editor.Row) {
	fmt.Fprintln(r.out, RenderTable(r.theme, title, rows))
}

// Notify prints a one-line status message.
func (r *Renderer) Notify(level editor.Level, msg string) {
	fmt.Fprintln(r.out, FormatNotice(r.theme, level, msg))
}

// FormatNotice styles a status message for level.
func FormatNotice(th Theme, level editor.Level, msg string) string {
	switch level {
	case editor.LevelSuccess:
		return th.Success.Render(coretheme.IconSuccess + " " + msg)
	case editor.LevelWarning:
		return th.Warning.Render(coretheme.IconWarning + " " + msg)
	case editor.LevelError:
		return th.Error.Render(coretheme.IconError + " " + msg)
	default:
		return th.Info.Render(coretheme.IconInfo + " " + msg)
	}
}
