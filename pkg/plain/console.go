// Package plain is a line-oriented front end for pipes and dumb terminals.
// Choices are answered by number or label, values by typing a line (`""`
// for an empty one), and hotkeys by typing a chord such as "ctrl+q".
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/tui"
	"github.com/sirupsen/logrus"
)

const (
	// dismissLine answers any prompt with "back".
	dismissLine = "-"
	// clearLine sets an input to the empty string.
	clearLine = `""`
)

var _ editor.Renderer = (*Console)(nil)

// Console implements editor.Renderer and a key source over a reader and
// a writer.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	theme  tui.Theme
	logger *logrus.Entry
}

// New creates a console reading answers from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		theme:  tui.DefaultTheme,
		logger: logging.NewLogger("plain"),
	}
}

// readLine returns the next trimmed line. A final line without a newline
// is returned before io.EOF.
func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose prints numbered choices and reads a number or a label. An empty
// line or "-" dismisses the prompt.
func (c *Console) Choose(ctx context.Context, title string, choices []string) (int, error) {
	for {
		fmt.Fprintln(c.out, title)
		for i, choice := range choices {
			fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice)
		}
		fmt.Fprint(c.out, "> ")

		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		if line == "" || line == dismissLine {
			return 0, editor.ErrDismissed
		}
		if idx, ok := parseChoice(line, choices); ok {
			return idx, nil
		}
		fmt.Fprintf(c.out, "Invalid choice %q\n", line)
	}
}

func parseChoice(line string, choices []string) (int, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(choices) {
			return n - 1, true
		}
		return 0, false
	}
	for i, choice := range choices {
		if strings.EqualFold(choice, line) {
			return i, true
		}
	}
	return 0, false
}

// Input reads one line. An empty line keeps initial, a literal "" clears
// the value and "-" dismisses.
func (c *Console) Input(ctx context.Context, title, initial string) (string, error) {
	fmt.Fprintf(c.out, "%s [%s]: ", title, initial)
	line, err := c.readLine(ctx)
	if err != nil {
		return "", err
	}
	switch line {
	case "":
		return initial, nil
	case clearLine:
		return "", nil
	case dismissLine:
		return "", editor.ErrDismissed
	}
	return line, nil
}

// Apply switches the theme used for tables.
func (c *Console) Apply(name string) error {
	th, ok := tui.LookupTheme(name)
	if !ok {
		return fmt.Errorf("plain: unknown theme %q", name)
	}
	c.theme = th
	return nil
}

// Table prints a settings table.
func (c *Console) Table(title string, rows []editor.Row) {
	fmt.Fprintln(c.out, tui.RenderTable(c.theme, title, rows))
}

// Notify prints a status line prefixed with its level.
func (c *Console) Notify(level editor.Level, msg string) {
	fmt.Fprintf(c.out, "[%s] %s\n", level, msg)
}

// ReadKey reads lines until one parses as a chord. Blank lines are
// skipped; io.EOF ends input.
func (c *Console) ReadKey(ctx context.Context) (hotkey.KeyPress, error) {
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return hotkey.KeyPress{}, err
		}
		if line == "" {
			continue
		}
		kp, err := hotkey.ParseChord(line)
		if err != nil {
			c.logger.WithFields(logrus.Fields{"input": line, "error": err}).Debug("Ignoring input")
			fmt.Fprintf(c.out, "Not a key chord: %q\n", line)
			continue
		}
		return kp, nil
	}
}
