package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/toolcompare"
	"github.com/agentstation/toolcompare/internal/apitest"
	"github.com/agentstation/toolcompare/pkg/logging"
	"github.com/agentstation/toolcompare/pkg/tools"
)

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	isolate(t)

	app, err := New("1.0.0", "abc123", "2025-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// run executes the root command and returns stdout and stderr.
func run(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory"})

	if app.Version() != "1.0.0" || app.Commit() != "abc123" || app.Date() != "2025-01-01" || app.BuiltBy() != "test" {
		t.Errorf("version info = %s %s %s %s", app.Version(), app.Commit(), app.Date(), app.BuiltBy())
	}
	if app.Logger() == nil || app.Config() == nil || app.Metrics() == nil {
		t.Error("app dependencies not initialized")
	}
}

// TestApp_Client_Singleton verifies that Client() returns the same instance.
func TestApp_Client_Singleton(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory"})

	var wg sync.WaitGroup
	clients := make([]toolcompare.Client, 10)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := app.Client()
			if err != nil {
				t.Errorf("Client() failed: %v", err)
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(clients); i++ {
		if clients[i] != clients[0] {
			t.Fatal("Client() returned different instances")
		}
	}
}

// TestApp_Client_InvalidDriver verifies bad store configuration surfaces on first use.
func TestApp_Client_InvalidDriver(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "redis"})
	if _, err := app.Client(); err == nil {
		t.Error("Client() with unknown driver succeeded")
	}
}

// TestApp_Shutdown verifies shutdown closes the client and can run twice.
func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory"})
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() without client failed: %v", err)
	}
	if _, err := app.Client(); err != nil {
		t.Fatal(err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() failed: %v", err)
	}
}

// TestExecute_EndToEnd drives the CLI against a fake API with a file store.
func TestExecute_EndToEnd(t *testing.T) {
	api := apitest.New(t, apitest.WithCatalog(tools.Tool{ID: "notion", Name: "Notion"}))
	dir := t.TempDir()
	app := newTestApp(t, &Config{
		APIURL:      api.URL(),
		StoreDriver: "file",
		StorePath:   dir + "/comparison.json",
		Format:      "table",
	})

	out, _, err := run(t, app, "add", "notion")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out, "Added notion (1/5)") {
		t.Errorf("add output = %q", out)
	}

	out, _, err = run(t, app, "list", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, `"name": "Notion"`) {
		t.Errorf("list output = %q", out)
	}

	api.Down()
	out, stderr, err := run(t, app, "status", "--metrics")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Local Only") {
		t.Errorf("status output = %q", out)
	}
	if !strings.Contains(stderr, "toolcompare_") {
		t.Errorf("metrics not written: %q", stderr)
	}
}

// TestExecute_FlagsDoNotLeak verifies flags only apply to the execution that set them.
func TestExecute_FlagsDoNotLeak(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory", Format: "table"})

	out, _, err := run(t, app, "status", "-o", "json", "-v")
	if err != nil {
		t.Fatalf("status -o json failed: %v", err)
	}
	if !strings.Contains(out, `"local_only"`) {
		t.Errorf("json status output = %q", out)
	}

	out, _, err = run(t, app, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "Local Only") || strings.Contains(out, `"local_only"`) {
		t.Errorf("status output = %q, want a table", out)
	}
	if app.Config().Format != "table" || app.Config().Verbose {
		t.Errorf("config after run = format %q verbose %v", app.Config().Format, app.Config().Verbose)
	}
}

// TestExecute_InvalidFormat verifies unknown formats are rejected before running.
func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory"})
	if _, _, err := run(t, app, "list", "-o", "xml"); err == nil {
		t.Error("list -o xml succeeded")
	}
}

// TestExecute_Version verifies the version command.
func TestExecute_Version(t *testing.T) {
	app := newTestApp(t, &Config{StoreDriver: "memory"})
	out, _, err := run(t, app, "version", "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "toolcompare 1.0.0") || !strings.Contains(out, "abc123") {
		t.Errorf("version output = %q", out)
	}
}
