package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/cmd/cmdtest"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestStatusSynced(t *testing.T) {
	api := apitest.New(t, apitest.WithComparison(tools.Tool{ID: "notion"}))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "json")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "synced", got["state"])
	assert.EqualValues(t, 1, got["size"])
	assert.EqualValues(t, 5, got["capacity"])
	assert.NotContains(t, got, "remote_error")
}

func TestStatusOffline(t *testing.T) {
	api := apitest.New(t)
	api.Down()
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Local Only")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "never")
}
