package output

import (
	"io"

	"github.com/agentstation/toolcompare/internal/cmd/table"
)

// Render writes raw in the given format. Table formats render tableData instead,
// since tables need explicit headers and column order.
func Render(w io.Writer, format Format, tableData table.Data, raw any) error {
	if format.IsTable() {
		return NewFormatter(FormatTable).Format(w, tableData)
	}
	return NewFormatter(format).Format(w, raw)
}
