package cmd

import (
	"fmt"

	"github.com/grovetools/prefs/pkg/app"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/tui"
	"github.com/spf13/cobra"
)

// newKeysCmd creates the parent `keys` command. Without a subcommand it
// lists the configured hotkeys.
func newKeysCmd() *cobra.Command {
	cmd := newCommand("keys", "List configured hotkeys")
	cmd.Long = `List every entry of the hotkey sections with its chord.

Chords are shown in canonical form: modifiers in Ctrl, Alt, Shift order
followed by the key, e.g. "Ctrl+Shift+P".`
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

		rows := app.HotkeyRows(tree, e.loc)
		if len(rows) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), faintStyle.Render("No hotkeys configured."))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable(themeFor(tree), editor.Text(e.loc, editor.KeyHotkeys), rows))
		return nil
	}

	cmd.AddCommand(newKeysCheckCmd())

	return cmd
}
