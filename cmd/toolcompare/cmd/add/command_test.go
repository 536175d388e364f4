package add

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/cmd/cmdtest"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestAddRemote(t *testing.T) {
	api := apitest.New(t, apitest.WithCatalog(tools.Tool{ID: "notion", Name: "Notion"}))
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app), "notion", "notion")
	require.NoError(t, err)
	assert.Contains(t, out, "Added notion (1/5)")
	assert.Contains(t, out, "notion is already in the comparison")
	assert.Equal(t, []string{"notion"}, api.Comparison())
}

func TestAddOffline(t *testing.T) {
	api := apitest.New(t)
	api.Down()
	app := cmdtest.NewApp(t, api, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app), "a")
	require.NoError(t, err)
	assert.Contains(t, out, "Added a locally (1/5), comparison API unavailable")
}

func TestAddLimit(t *testing.T) {
	app := cmdtest.NewApp(t, nil, kvstore.NewMemory(), "table")

	out, err := cmdtest.Run(t, NewCommand(app), "a", "b", "c", "d", "e", "f")
	require.Error(t, err)
	assert.True(t, errors.IsLimitExceeded(err))
	assert.Contains(t, out, "(5/5)")
}

func TestAddRequiresArgs(t *testing.T) {
	app := cmdtest.NewApp(t, nil, kvstore.NewMemory(), "table")
	_, err := cmdtest.Run(t, NewCommand(app))
	assert.Error(t, err)
}
