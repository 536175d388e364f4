// Package add implements the add command.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// NewCommand creates the add command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "add <tool-id>...",
		GroupID: "core",
		Short:   "Add tools to the comparison",
		Long: `Add selects one or more tools for comparison.

A comparison holds at most five tools. Tools already in the comparison are
skipped. When the comparison API is unreachable the tool is added to the
local comparison only.`,
		Example: `  toolcompare add notion
  toolcompare add notion coda confluence`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var offline bool
			tc.OnFallback(func(string, errors.RemoteClass) { offline = true })

			tc.Load(ctx)
			for _, id := range args {
				offline = false
				err := tc.Add(ctx, id)
				switch {
				case errors.IsAlreadyPresent(err):
					fmt.Fprintf(out, "%s is already in the comparison\n", id)
					continue
				case err != nil:
					return err
				}

				status := tc.Status()
				if offline {
					fmt.Fprintf(out, "Added %s locally (%d/%d), comparison API unavailable\n", id, status.Size, status.Capacity)
				} else {
					fmt.Fprintf(out, "Added %s (%d/%d)\n", id, status.Size, status.Capacity)
				}
				app.Logger().Debug().Str("tool_id", id).Bool("offline", offline).Msg("Tool added")
			}
			return nil
		},
	}
}
