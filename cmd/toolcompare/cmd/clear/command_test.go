package clear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/cmd/cmdtest"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestClearIsLocalOnly(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(tools.Tool{ID: "notion"}, tools.Tool{ID: "coda"}))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)
	assert.Equal(t, "Cleared 2 tools from the local comparison\n", out)
	assert.Equal(t, []string{"notion", "coda"}, api.Comparison())
	assert.Zero(t, api.Calls("remove"))
}
