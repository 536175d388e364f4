package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/cmd/output"
)

// Execute runs the toolcompare CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "toolcompare",
		Short:   "Manage the tools selected for comparison",
		Version: a.version,
		Long: `toolcompare keeps the tools you selected for comparison in sync between
the comparison API and a local cache.

Without a reachable API (or without TOOLCOMPARE_API_URL) every command works
against the local cache, and the next successful load replaces it with the
remote comparison.`,
		PersistentPreRunE:  a.setupCommand,
		PersistentPostRunE: a.writeMetrics,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.toolcompare.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.Bool("metrics", false, "print client metrics to stderr after the command")

	rootCmd.SetVersionTemplate("toolcompare {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	configFile := mustGetString(cmd, "config")
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	showMetrics := mustGetBool(cmd, "metrics")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	base := a.base
	config := &base
	if configFile != "" {
		loaded, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		config = loaded
	}
	if format != "" {
		if _, err := output.ParseFormat(format); err != nil {
			return err
		}
	}

	config.UpdateFromFlags(verbose, quiet, noColor, showMetrics, format, logLevel)
	a.config = config

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// writeMetrics prints the metrics gathered during the command when --metrics is set.
func (a *App) writeMetrics(cmd *cobra.Command, _ []string) error {
	if !a.config.ShowMetrics {
		return nil
	}
	return a.metrics.WriteText(cmd.ErrOrStderr())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
