// Package cmdtest provides helpers for testing commands against a fake comparison API.
package cmdtest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare"
	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/logging"
)

// NewApp returns an app context whose client talks to api and keeps its
// local comparison in store. A nil api gives a local-only client.
func NewApp(t *testing.T, api *apitest.Server, store kvstore.Store, format string) *appcontext.Mock {
	t.Helper()

	opts := []toolcompare.Option{
		toolcompare.WithStore(store),
		toolcompare.WithLogger(logging.NewNopLogger()),
		toolcompare.WithTimeout(2 * time.Second),
	}
	if api != nil {
		opts = append(opts, toolcompare.WithRemote(api.URL(), nil))
	}
	tc, err := toolcompare.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tc.Close() })

	return &appcontext.Mock{
		ClientFunc:       func() (toolcompare.Client, error) { return tc, nil },
		OutputFormatFunc: func() string { return format },
	}
}

// Run executes cmd with args and returns what it wrote to stdout.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
