package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/prefs/pkg/settings"
	"github.com/spf13/cobra"
)

// newSchemaCmd creates the `schema` command.
func newSchemaCmd() *cobra.Command {
	var output string

	cmd := newCommand("schema", "Print the JSON Schema of the preferences document")
	cmd.Long = `Print a JSON Schema describing the configuration document, with the
preferences tree under the configured key. Editors can use it for
completion and validation.`
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		schema := settings.Schema(cfg.SectionKey)
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
		data = append(data, '\n')

		if output == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write schema file %s: %w", output, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(theme.IconSuccess+" Wrote "+output))
		return nil
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to a file")

	return cmd
}
