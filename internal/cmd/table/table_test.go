package table

import (
	"testing"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestToolsToTableData(t *testing.T) {
	set := comparison.Set{
		{ID: "notion", Name: "Notion", Category: "docs", Pricing: "freemium", Rating: 4.66, Tags: []string{"wiki", "notes"}},
		tools.Placeholder("coda"),
	}

	data := ToolsToTableData(set, false)
	assert.Equal(t, []string{"#", "ID", "Name", "Category", "Pricing", "Rating"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"1", "notion", "Notion", "docs", "freemium", "4.7"}, data.Rows[0])
	assert.Equal(t, []string{"2", "coda", "coda (details pending)", "-", "-", "-"}, data.Rows[1])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))

	wide := ToolsToTableData(set, true)
	assert.Len(t, wide.Headers, 10)
	assert.Equal(t, "wiki, notes", wide.Rows[0][8])
	assert.Equal(t, "-", wide.Rows[1][9])
}

func TestStatusToTableData(t *testing.T) {
	now := utc.Now()
	data := StatusToTableData(comparison.Status{
		State:    comparison.StateLocalOnly,
		Size:     2,
		Capacity: 5,
		LastSync: &now,
		Remote:   errors.RemoteClassAuth,
	})
	assert.Equal(t, []string{"State", "Local Only"}, data.Rows[0])
	assert.Equal(t, []string{"Tools", "2/5"}, data.Rows[1])
	assert.Equal(t, []string{"Remote", "auth"}, data.Rows[3])

	data = StatusToTableData(comparison.Status{State: comparison.StateUnloaded, Capacity: 5})
	assert.Equal(t, []string{"Last Sync", "never"}, data.Rows[2])
	assert.Equal(t, []string{"Remote", "ok"}, data.Rows[3])
}
