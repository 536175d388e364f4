// Package app provides the application context and dependency management
// for the toolcompare CLI. It centralizes configuration, logging, and the
// lifecycle of the comparison client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolcompare"
	"github.com/agentstation/toolcompare/internal/appcontext"
	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/internal/metrics"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the toolcompare application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// base is the configuration before flags; each command execution starts from a copy
	base    Config
	config  *Config
	logger  *zerolog.Logger
	metrics *metrics.Metrics

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client toolcompare.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// and ~/.toolcompare.yaml, which functional options may replace.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		metrics: metrics.New(nil),
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	app.base = *app.config

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Metrics returns the metrics the client records into.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the comparison client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (toolcompare.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions()
	if err != nil {
		return nil, err
	}
	c, err := toolcompare.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// Shutdown performs graceful shutdown of the application.
// It stops background refreshes and closes the local store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close comparison client during shutdown")
		return err
	}
	return nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() ([]toolcompare.Option, error) {
	driver, err := kvstore.ParseDriver(a.config.StoreDriver)
	if err != nil {
		return nil, err
	}

	opts := []toolcompare.Option{
		toolcompare.WithStoreDriver(driver, a.config.StorePath),
		toolcompare.WithMetrics(a.metrics),
		toolcompare.WithLogger(a.logger),
	}

	if a.config.StoreKey != "" {
		opts = append(opts, toolcompare.WithStoreKey(a.config.StoreKey))
	}
	if a.config.MaxTools > 0 {
		opts = append(opts, toolcompare.WithMaxTools(a.config.MaxTools))
	}

	// The API is optional; without it the client runs local-only.
	if a.config.APIURL != "" {
		var token *string
		if a.config.APIToken != "" {
			token = &a.config.APIToken
		}
		opts = append(opts,
			toolcompare.WithRemote(a.config.APIURL, token),
			toolcompare.WithRemoteAuth(a.config.APIAuth),
		)
		if a.config.APITimeout > 0 {
			opts = append(opts, toolcompare.WithTimeout(a.config.APITimeout))
		}
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c toolcompare.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
