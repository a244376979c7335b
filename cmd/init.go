package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/prefs/pkg/config"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// newInitCmd creates the `init` command.
func newInitCmd() *cobra.Command {
	var (
		force       bool
		writeConfig bool
	)

	cmd := newCommand("init", "Write default preferences into the config file")
	cmd.Long = `Add a default preferences tree to the configuration document.

The file is created when missing. Other properties of an existing file
are kept. An existing preferences tree is only replaced with --force.`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if writeConfig {
			if _, err := os.Stat(appConfigPath); err == nil {
				fmt.Fprintln(out, faintStyle.Render("App config exists: "+config.AbbreviatePath(appConfigPath)))
			} else if err := e.cfg.Save(appConfigPath); err != nil {
				return err
			} else {
				fmt.Fprintln(out, successStyle.Render(theme.IconSuccess+" Wrote "+config.AbbreviatePath(appConfigPath)))
			}
		}

		doc, err := e.store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if gjson.GetBytes(doc, settings.EscapeKey(e.store.Key())).Exists() && !force {
			fmt.Fprintf(out, "%s already has %q; use --force to replace it\n",
				config.AbbreviatePath(e.store.Path()), e.store.Key())
			return nil
		}

		if err := e.store.SaveTree(cmd.Context(), settings.Default()); err != nil {
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("%s Wrote default %s to %s", theme.IconSuccess, e.store.Key(), config.AbbreviatePath(e.store.Path()))))
		return nil
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing preferences tree")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write the app config file if missing")

	return cmd
}
