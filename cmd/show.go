package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/prefs/pkg/editor"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/grovetools/prefs/pkg/tui"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

// newShowCmd creates the `show` command.
func newShowCmd() *cobra.Command {
	cmd := newCommand("show [section]", "Print preferences as tables")
	cmd.Long = `Print every section, or only the named one, as a table of entries.

Use --json to print the preferences tree as JSON instead.`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cfg)
		if err != nil {
			return err
		}
		tree, err := e.loadTree(cmd.Context())
		if err != nil {
			return err
		}

		sections := tree.Ordered()
		if len(args) == 1 {
			sec := tree.Section(args[0])
			if sec == nil {
				return fmt.Errorf("no section named %q", args[0])
			}
			sections = []*settings.Section{sec}
		}

		out := cmd.OutOrStdout()
		if cli.GetOptions(cmd).JSONOutput {
			data, err := json.Marshal(sections)
			if err != nil {
				return err
			}
			_, err = out.Write(pretty.Pretty(data))
			return err
		}

		th := themeFor(tree)
		for i, sec := range sections {
			if i > 0 {
				fmt.Fprintln(out)
			}
			rows := make([]editor.Row, 0, len(sec.Entries))
			for _, en := range sec.Entries {
				rows = append(rows, editor.Row{Name: e.loc.Lookup(en.Name), Value: en.Value, Options: en.Options})
			}
			fmt.Fprintln(out, tui.RenderTable(th, e.loc.Lookup(sec.Name), rows))
		}
		return nil
	}

	return cmd
}
