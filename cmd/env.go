package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grovetools/prefs/pkg/app"
	"github.com/grovetools/prefs/pkg/config"
	"github.com/grovetools/prefs/pkg/document"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/grovetools/prefs/pkg/i18n"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/plain"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/grovetools/prefs/pkg/tui"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// env holds what every command needs from the resolved configuration.
type env struct {
	cfg   *config.Config
	store *document.Store
	loc   *i18n.Catalog
}

func newEnv(c *config.Config) (*env, error) {
	if c == nil {
		c = config.Default()
	}
	e := &env{
		cfg:   c,
		store: document.NewStore(c.ConfigFile, c.SectionKey),
		loc:   i18n.New(nil),
	}
	if c.Catalog != "" {
		cat, err := i18n.Load(c.Catalog)
		if err != nil {
			return nil, err
		}
		e.loc = cat
	}
	return e, nil
}

// loadTree reads the settings tree and logs hotkey problems found in it.
func (e *env) loadTree(ctx context.Context) (*settings.Tree, error) {
	tree, err := e.store.LoadTree(ctx)
	if errors.Is(err, settings.ErrSectionMissing) {
		return nil, fmt.Errorf("%w in %s (run 'prefs init' to create it)", err, config.AbbreviatePath(e.store.Path()))
	}
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("cmd")
	for _, p := range hotkey.Validate(tree) {
		logger.WithFields(logrus.Fields{
			"kind":    string(p.Kind),
			"chord":   p.Chord,
			"actions": strings.Join(p.Actions, ", "),
		}).Warn("Hotkey problem")
	}
	return tree, nil
}

// frontend bundles the renderer, key source and theme applier of either
// the terminal UI or the line-oriented console.
type frontend struct {
	renderer editor.Renderer
	keys     app.KeySource
	theme    app.ThemeApplier
}

const keyHint = "Press a hotkey (Ctrl+C to quit)"

func newFrontend(c *config.Config, in io.Reader, out io.Writer) frontend {
	if !c.Plain && isInteractive(in) && isInteractive(out) {
		r := tui.NewRenderer(tui.WithInput(in), tui.WithOutput(out))
		return frontend{renderer: r, keys: r.KeyReader(keyHint), theme: r}
	}
	con := plain.New(in, out)
	return frontend{renderer: con, keys: con, theme: con}
}

// isInteractive reports whether v is a terminal file.
func isInteractive(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// themeFor returns the theme named by the tree's theme entry.
func themeFor(tree *settings.Tree) tui.Theme {
	if th, ok := tui.LookupTheme(app.ThemeValue(tree)); ok {
		return th
	}
	return tui.DefaultTheme
}
