package remove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/cmd/cmdtest"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestRemove(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(tools.Tool{ID: "notion"}, tools.Tool{ID: "coda"}))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app), "notion", "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed notion (1/5)")
	assert.Contains(t, out, "Removed missing (1/5)")
	assert.Equal(t, []string{"coda"}, api.Comparison())
}

func TestRemoveOffline(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(tools.Tool{ID: "notion"}))
	store := kvstore.NewMemory()

	// Sync once so the local copy holds the remote comparison.
	_, err := cmdtest.Run(t, NewCommand(cmdtest.NewApp(t, api, store, "table")), "missing")
	require.NoError(t, err)

	api.Down()
	out, err := cmdtest.Run(t, NewCommand(cmdtest.NewApp(t, api, store, "table")), "notion")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed notion (0/5)")
}
