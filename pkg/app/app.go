// Package app runs the host loop: read a key, resolve it to an action,
// dispatch the action and run the preferences editor on request.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/prefs/pkg/action"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/sirupsen/logrus"
)

// KeySource produces key presses. io.EOF ends the host loop.
type KeySource interface {
	ReadKey(ctx context.Context) (hotkey.KeyPress, error)
}

// ThemeApplier switches the active UI theme.
type ThemeApplier interface {
	Apply(name string) error
}

// Option configures an App.
type Option func(*App)

// WithTheme sets the applier called when a saved edit changes the theme.
func WithTheme(t ThemeApplier) Option {
	return func(a *App) { a.theme = t }
}

// WithLocalizer sets the display-name lookup used by the editor and the
// hotkey list.
func WithLocalizer(l editor.Localizer) Option {
	return func(a *App) {
		if l != nil {
			a.loc = l
		}
	}
}

// App is the host application.
type App struct {
	tree       *settings.Tree
	keys       KeySource
	renderer   editor.Renderer
	persister  editor.Persister
	theme      ThemeApplier
	loc        editor.Localizer
	resolver   *hotkey.Resolver
	dispatcher *action.Dispatcher
	logger     *logrus.Entry
}

// New wires an App around a loaded tree.
func New(tree *settings.Tree, keys KeySource, r editor.Renderer, p editor.Persister, opts ...Option) *App {
	a := &App{
		tree:       tree,
		keys:       keys,
		renderer:   r,
		persister:  p,
		loc:        noLocalizer{},
		resolver:   hotkey.NewResolver(),
		dispatcher: action.NewDispatcher(),
		logger:     logging.NewLogger("app"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.dispatcher.Handle(action.Shutdown, func(context.Context) error { return nil })
	a.dispatcher.Handle(action.ShowHotkeyList, func(context.Context) error {
		a.ShowHotkeys()
		return nil
	})
	a.dispatcher.Handle(action.OpenEditor, func(ctx context.Context) error {
		_, err := a.OpenEditor(ctx)
		return err
	})
	return a
}

type noLocalizer struct{}

func (noLocalizer) Lookup(name string) string { return name }

// Tree returns the current committed settings tree.
func (a *App) Tree() *settings.Tree { return a.tree }

// Run processes key presses until Shutdown, end of input or context
// cancellation. Unknown actions are logged and skipped.
func (a *App) Run(ctx context.Context) error {
	a.applyTheme(ThemeValue(a.tree))

	for {
		kp, err := a.keys.ReadKey(ctx)
		if errors.Is(err, io.EOF) {
			a.logger.Debug("Input closed")
			return nil
		}
		if err != nil {
			return err
		}

		stop, err := a.HandleKey(ctx, kp)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// HandleKey resolves and dispatches one key press. It reports whether the
// host should stop. Only context cancellation is returned as an error.
func (a *App) HandleKey(ctx context.Context, kp hotkey.KeyPress) (stop bool, err error) {
	name, ok := a.resolver.Resolve(kp, a.tree)
	if !ok {
		a.logger.WithField("key", kp.String()).Debug("No hotkey bound")
		return false, nil
	}

	cmd, err := a.dispatcher.Dispatch(ctx, name)
	switch {
	case errors.Is(err, action.ErrUnknownAction):
		a.logger.WithFields(logrus.Fields{"key": kp.String(), "action": name}).Warn("Unknown action")
		return false, nil
	case errors.Is(err, io.EOF):
		return true, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true, err
	case err != nil:
		a.logger.WithFields(logrus.Fields{"action": name, "error": err}).Error("Action failed")
		a.renderer.Notify(editor.LevelError, err.Error())
		return false, nil
	}

	a.logger.WithFields(logrus.Fields{"key": kp.String(), "command": cmd.String()}).Info("Handled hotkey")
	return cmd == action.Shutdown, nil
}

// OpenEditor runs a preferences session. A saved session replaces the
// committed tree and re-applies the theme when it changed.
func (a *App) OpenEditor(ctx context.Context) (editor.Result, error) {
	s := editor.NewSession(a.tree, a.renderer, a.persister, editor.WithLocalizer(a.loc))
	res, err := s.Run(ctx)
	if err != nil {
		return res, err
	}

	if res.Outcome == editor.OutcomeSaved {
		a.tree = res.Tree
		if res.ReapplyTheme {
			a.applyTheme(res.Theme)
		}
	}
	return res, nil
}

// ShowHotkeys renders the configured hotkeys as a table.
func (a *App) ShowHotkeys() {
	a.renderer.Table(editor.Text(a.loc, editor.KeyHotkeys), HotkeyRows(a.tree, a.loc))
}

// HotkeyRows lists hotkey bindings as table rows, with chords in
// canonical form where they parse.
func HotkeyRows(tree *settings.Tree, loc editor.Localizer) []editor.Row {
	if loc == nil {
		loc = noLocalizer{}
	}
	bindings := hotkey.Bindings(tree)
	rows := make([]editor.Row, 0, len(bindings))
	for _, b := range bindings {
		chord := b.Chord
		if canonical, err := hotkey.Normalize(chord); err == nil {
			chord = canonical
		}
		rows = append(rows, editor.Row{Name: loc.Lookup(b.Action), Value: chord})
	}
	return rows
}

func (a *App) applyTheme(name string) {
	if a.theme == nil || name == "" {
		return
	}
	if err := a.theme.Apply(name); err != nil {
		a.logger.WithFields(logrus.Fields{"theme": name, "error": err}).Warn("Failed to apply theme")
		a.renderer.Notify(editor.LevelWarning, fmt.Sprintf("Theme %q not available", name))
	}
}

// ThemeValue returns the value of the first entry named "*.Theme".
func ThemeValue(tree *settings.Tree) string {
	var value string
	tree.Walk(func(_ *settings.Section, e *settings.Entry) bool {
		if strings.HasSuffix(strings.ToLower(e.Name), ".theme") {
			value = e.Value
			return false
		}
		return true
	})
	return value
}
