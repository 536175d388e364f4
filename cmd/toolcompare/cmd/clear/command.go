// Package clear implements the clear command.
package clear

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/pkg/comparison"
)

// NewCommand creates the clear command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		GroupID: "management",
		Short:   "Clear the local comparison",
		Long: `Clear empties the locally cached comparison. The comparison API is not
contacted, so the next list restores the remote comparison when it is reachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc, err := app.Client()
			if err != nil {
				return err
			}

			var removed int
			tc.OnCleared(func(set comparison.Set) { removed = set.Len() })

			tc.Load(cmd.Context())
			if err := tc.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d tools from the local comparison\n", removed)
			return err
		},
	}
}
