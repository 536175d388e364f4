package list

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/cmd/cmdtest"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestListJSON(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(
		tools.Tool{ID: "notion", Name: "Notion"},
		tools.Tool{ID: "coda", Name: "Coda"},
	))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "json")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)

	var got []tools.Tool
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "notion", got[0].ID)
	assert.Equal(t, "coda", got[1].ID)
}

func TestListTable(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(tools.Tool{ID: "notion", Name: "Notion", Category: "docs"}))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "wide")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Notion")
	assert.Contains(t, strings.ToUpper(out), "VENDOR")
}

func TestListEmpty(t *testing.T) {
	app := cmdtest.NewApp(t, nil, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)
	assert.Equal(t, "No tools selected for comparison.\n", out)
}

func TestListRejectsArgs(t *testing.T) {
	app := cmdtest.NewApp(t, nil, kvstore.NewMemory(), "table")
	_, err := cmdtest.Run(t, NewCommand(app), "extra")
	assert.Error(t, err)
}
