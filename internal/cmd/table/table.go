// Package table converts comparison data into rows for table output.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ToolsToTableData converts a comparison to table format. Wide adds
// vendor, website, tags and when each tool was added.
func ToolsToTableData(set comparison.Set, wide bool) Data {
	headers := []string{"#", "ID", "Name", "Category", "Pricing", "Rating"}
	align := []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Vendor", "Website", "Tags", "Added")
		align = append(align, AlignLeft, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(set))
	for i, tool := range set {
		row := []string{
			strconv.Itoa(i + 1),
			tool.ID,
			FormatName(tool),
			dash(tool.Category),
			dash(tool.Pricing),
			FormatRating(tool.Rating),
		}
		if wide {
			added := "-"
			if tool.AddedAt != nil && !tool.AddedAt.IsZero() {
				added = tool.AddedAt.String()
			}
			row = append(row,
				dash(tool.Vendor),
				dash(tool.Website),
				dash(strings.Join(tool.Tags, ", ")),
				added,
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// StatusToTableData converts a status snapshot to a property/value table.
func StatusToTableData(status comparison.Status) Data {
	lastSync := "never"
	if status.LastSync != nil {
		lastSync = status.LastSync.String()
	}
	remote := "ok"
	if status.Remote != "" {
		remote = string(status.Remote)
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"State", Title(status.State.String())},
			{"Tools", fmt.Sprintf("%d/%d", status.Size, status.Capacity)},
			{"Last Sync", lastSync},
			{"Remote", remote},
		},
	}
}

// FormatName returns the display name, marking summaries without details.
func FormatName(tool tools.Tool) string {
	if tool.Partial {
		return tool.DisplayName() + " (details pending)"
	}
	return tool.DisplayName()
}

// FormatRating formats a rating with one decimal, or "-" when unrated.
func FormatRating(rating float64) string {
	if rating <= 0 {
		return "-"
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

// Title turns a snake_case identifier into title case, e.g. "local_only" to "Local Only".
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
