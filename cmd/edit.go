package cmd

import (
	"errors"
	"io"

	"github.com/grovetools/prefs/pkg/app"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/spf13/cobra"
)

// newEditCmd creates the `edit` command.
func newEditCmd() *cobra.Command {
	cmd := newCommand("edit", "Open the preferences editor")
	cmd.Long = `Browse sections, pick an entry and change its value.

Changes are kept in memory until "Save & Exit" is chosen. "Cancel"
discards them and leaves the file untouched.`
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

		res, err := a.OpenEditor(cmd.Context())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		logging.NewLogger("cmd").WithField("outcome", res.Outcome.String()).Debug("Editor closed")
		return nil
	}

	return cmd
}
