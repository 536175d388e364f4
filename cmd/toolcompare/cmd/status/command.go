// Package status implements the status command.
package status

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/internal/cmd/output"
	"github.com/agentstation/toolcompare/internal/cmd/table"
)

// NewCommand creates the status command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: "management",
		Short:   "Show synchronization status",
		Long: `Status loads the comparison and reports whether it is in sync with the
comparison API, how many tools it holds, and why the last remote call failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc, err := app.Client()
			if err != nil {
				return err
			}

			tc.Load(cmd.Context())
			status := tc.Status()
			format := output.DetectFormat(app.OutputFormat())
			return output.Render(cmd.OutOrStdout(), format, table.StatusToTableData(status), status)
		},
	}
}
