package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/cmd/toolcompare/cmd/add"
	clearcmd "github.com/agentstation/toolcompare/cmd/toolcompare/cmd/clear"
	"github.com/agentstation/toolcompare/cmd/toolcompare/cmd/list"
	"github.com/agentstation/toolcompare/cmd/toolcompare/cmd/remove"
	"github.com/agentstation/toolcompare/cmd/toolcompare/cmd/status"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(add.NewCommand(a))
	rootCmd.AddCommand(remove.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(clearcmd.NewCommand(a))
	rootCmd.AddCommand(status.NewCommand(a))

	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("toolcompare %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
