package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grovetools/core/tui/theme"
	"github.com/grovetools/prefs/pkg/hotkey"
	"github.com/spf13/cobra"
)

var errHotkeyProblems = errors.New("hotkey problems found")

// newKeysCheckCmd creates the `keys check` command.
func newKeysCheckCmd() *cobra.Command {
	var strict bool

	cmd := newCommand("check", "Check hotkeys for conflicts and unusable chords")
	cmd.Long = `Report hotkey configuration problems:

- duplicate:     one chord bound to several actions (the first one wins)
- invalid:       a value that does not parse as a chord
- non-canonical: a chord that never matches as written, with the fix
- reserved:      a chord the terminal front end keeps for itself (Ctrl+C)`
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

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render("Hotkey check"))
		fmt.Fprintln(out)

		problems := hotkey.Validate(tree)
		if len(problems) == 0 {
			fmt.Fprintf(out, "%s (%d bindings)\n", successStyle.Render(theme.IconSuccess+" No problems found"), len(hotkey.Bindings(tree)))
			return nil
		}

		for _, p := range problems {
			actions := strings.Join(p.Actions, ", ")
			switch p.Kind {
			case hotkey.ProblemDuplicate:
				fmt.Fprintf(out, "%s %s bound to %s\n", errorStyle.Render(theme.IconError+" duplicate"), chordStyle.Render(p.Chord), actions)
			case hotkey.ProblemInvalid:
				fmt.Fprintf(out, "%s %q in %s\n", errorStyle.Render(theme.IconError+" invalid"), p.Chord, actions)
			case hotkey.ProblemNonCanonical:
				fmt.Fprintf(out, "%s %q in %s, use %s\n", warningStyle.Render(theme.IconWarning+" non-canonical"), p.Chord, actions, chordStyle.Render(p.Suggestion))
			case hotkey.ProblemReserved:
				fmt.Fprintf(out, "%s %s in %s never fires on a terminal\n", warningStyle.Render(theme.IconWarning+" reserved"), chordStyle.Render(p.Chord), actions)
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, faintStyle.Render(fmt.Sprintf("%d problem(s) in %s", len(problems), e.store.Path())))
		if strict {
			return errHotkeyProblems
		}
		return nil
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when problems are found")

	return cmd
}
