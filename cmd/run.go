package cmd

import (
	"errors"

	"github.com/grovetools/prefs/pkg/app"
	"github.com/grovetools/prefs/pkg/tui"
	"github.com/spf13/cobra"
)

// newRunCmd creates the `run` command.
func newRunCmd() *cobra.Command {
	cmd := newCommand("run", "Listen for hotkeys and run their actions")
	cmd.Long = `Read key presses and run the action bound to each one.

The built-in actions are:
  Preferences.HotKeys.Exit             quit
  Preferences.HotKeys.OpenPreferences  open the preferences editor
  Preferences.HotKeys.ShowHotKeys      list all hotkeys

On a terminal keys are read directly; otherwise each input line is parsed
as a chord, e.g. "ctrl+p". Ctrl+C is reserved for quitting on a terminal,
so a hotkey bound to it only fires from typed input.`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cfg)
		if err != nil {
			return err
		}
		tree, err := e.loadTree(cmd.Context())
		if err != nil {
			return err
		}

		fe := newFrontend(e.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		a := app.New(tree, fe.keys, fe.renderer, e.store,
			app.WithTheme(fe.theme),
			app.WithLocalizer(e.loc),
		)

		err = a.Run(cmd.Context())
		if errors.Is(err, tui.ErrInterrupted) {
			return nil
		}
		return err
	}

	return cmd
}
