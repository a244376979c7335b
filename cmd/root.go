package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/prefs/pkg/config"
	"github.com/grovetools/prefs/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// appConfigPath is the resolved --config value.
	appConfigPath string
	debug         bool

	// cfg is resolved from the app config file and flags before any
	// subcommand runs.
	cfg       *config.Config
	logCloser io.Closer
)

// newRootCmd creates the `prefs` command tree.
func newRootCmd() *cobra.Command {
	cmd := newCommand("prefs", "Edit application preferences and hotkeys")
	cmd.Long = `Edit the preferences section of a JSON configuration file.

Preferences are grouped into sections of named entries. Hotkey entries
hold a chord such as "Ctrl+P"; pressing it in 'prefs run' triggers the
bound action. Saving rewrites only the preferences property and keeps
every other property of the file intact.`
	cmd.SilenceUsage = true
	cmd.PersistentPreRunE = setupCommand
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logging.SetOutput(os.Stderr)
			logCloser.Close()
			logCloser = nil
		}
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "Enable debug logging (same as --verbose)")
	config.BindFlags(pf)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newInitCmd())

	return cmd
}

// newCommand creates a command with the standard grove flags. --config
// names the prefs application config rather than a grove.yml.
func newCommand(use, short string) *cobra.Command {
	cmd := cli.NewStandardCommand(use, short)
	if f := cmd.PersistentFlags().Lookup("config"); f != nil {
		f.Usage = "Application config file (default " + config.AbbreviatePath(config.DefaultPath()) + ")"
	}
	return cmd
}

// setupCommand loads the app config, applies flag overrides and
// configures logging.
func setupCommand(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	appConfigPath = opts.ConfigFile
	if appConfigPath == "" {
		appConfigPath = config.DefaultPath()
	}

	c, err := config.Load(appConfigPath)
	if err != nil {
		return err
	}
	if err := c.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if debug || opts.Verbose {
		c.LogLevel = "debug"
	}
	if err := logging.SetLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.LogFile != "" {
		closer, err := logging.OpenFile(c.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", c.LogFile, err)
		}
		logCloser = closer
	}

	logging.NewLogger("cmd").WithField("config_file", c.ConfigFile).Debug("Configuration loaded")
	cfg = c
	return nil
}

// Execute runs the root command with styled help and errors. SIGINT and
// SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.ExecuteContext(ctx, newRootCmd())
}
