// Package action maps resolved hotkey action names to host commands.
package action

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grovetools/prefs/pkg/logging"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownAction indicates an action name outside the known command set.
	// Callers log it and treat the key as unhandled.
	ErrUnknownAction = errors.New("action: unknown action")

	// ErrNoHandler indicates a known command with no registered handler.
	ErrNoHandler = errors.New("action: no handler for command")
)

// Command is one of the fixed host commands a hotkey can trigger.
type Command int

const (
	// Shutdown exits the host loop.
	Shutdown Command = iota + 1
	// OpenEditor opens the preferences editor.
	OpenEditor
	// ShowHotkeyList displays all configured hotkeys.
	ShowHotkeyList
)

// String returns a human-readable command name.
func (c Command) String() string {
	switch c {
	case Shutdown:
		return "shutdown"
	case OpenEditor:
		return "open-editor"
	case ShowHotkeyList:
		return "show-hotkeys"
	default:
		return "unknown"
	}
}

// Well-known entry names, matched on their trailing segments so that any
// wrapping prefix (typically "Preferences") is accepted.
const (
	ExitSuffix            = ".HotKeys.Exit"
	OpenPreferencesSuffix = ".HotKeys.OpenPreferences"
	ShowHotKeysSuffix     = ".HotKeys.ShowHotKeys"
)

var commandsBySuffix = []struct {
	suffix  string
	command Command
}{
	{ExitSuffix, Shutdown},
	{OpenPreferencesSuffix, OpenEditor},
	{ShowHotKeysSuffix, ShowHotkeyList},
}

// CommandFor maps an action name to its command.
func CommandFor(name string) (Command, error) {
	for _, c := range commandsBySuffix {
		if strings.HasSuffix(name, c.suffix) {
			return c.command, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// HandlerFunc runs a command.
type HandlerFunc func(ctx context.Context) error

// Dispatcher resolves action names to commands and invokes their handlers.
type Dispatcher struct {
	handlers map[Command]HandlerFunc
	logger   *logrus.Entry
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Command]HandlerFunc),
		logger:   logging.NewLogger("action"),
	}
}

// Handle registers fn for cmd, replacing any previous handler.
func (d *Dispatcher) Handle(cmd Command, fn HandlerFunc) {
	d.handlers[cmd] = fn
}

// Dispatch maps name to a command and runs its handler. The command is
// returned even when the handler fails, so callers can react to it.
func (d *Dispatcher) Dispatch(ctx context.Context, name string) (Command, error) {
	cmd, err := CommandFor(name)
	if err != nil {
		return 0, err
	}

	fn, ok := d.handlers[cmd]
	if !ok {
		return cmd, fmt.Errorf("%w: %s", ErrNoHandler, cmd)
	}

	d.logger.WithFields(logrus.Fields{"action": name, "command": cmd.String()}).Debug("Dispatching")
	return cmd, fn(ctx)
}
