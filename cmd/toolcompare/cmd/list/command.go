// Package list implements the list command.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/internal/cmd/output"
	"github.com/agentstation/toolcompare/internal/cmd/table"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List the tools selected for comparison",
		Long: `List loads the comparison from the comparison API and shows it.

When the API is unreachable the locally cached comparison is shown instead.`,
		Example: `  toolcompare list              # Show the comparison as a table
  toolcompare list -o wide      # Include vendor, website, tags and added time
  toolcompare list -o json      # Machine readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc, err := app.Client()
			if err != nil {
				return err
			}

			set := tc.Load(cmd.Context())
			format := output.DetectFormat(app.OutputFormat())

			if format.IsTable() && set.Len() == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No tools selected for comparison.")
				return err
			}

			data := table.ToolsToTableData(set, format == output.FormatWide)
			return output.Render(cmd.OutOrStdout(), format, data, set)
		},
	}
}
