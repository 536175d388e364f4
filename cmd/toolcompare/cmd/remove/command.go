// Package remove implements the remove command.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/appcontext"
)

// NewCommand creates the remove command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <tool-id>...",
		Aliases: []string{"rm"},
		GroupID: "core",
		Short:   "Remove tools from the comparison",
		Long: `Remove deselects tools. The local comparison is updated even when the
comparison API is unreachable. Removing a tool that is not selected is not an error.`,
		Example: `  toolcompare remove notion`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := app.Client()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			tc.Load(ctx)
			for _, id := range args {
				if err := tc.Remove(ctx, id); err != nil {
					return err
				}
				status := tc.Status()
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%d/%d)\n", id, status.Size, status.Capacity)
			}
			return nil
		},
	}
}
