package toolcompare

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/internal/metrics"
	"github.com/agentstation/toolcompare/internal/transport"
	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/logging"
)

// options holds the client configuration.
type options struct {
	// remote
	remoteURL string
	token     *string
	auth      transport.AuthConfig
	timeout   time.Duration
	remote    comparison.RemoteStore
	resolver  comparison.ToolResolver

	// local
	store       kvstore.Store
	storeDriver kvstore.Driver
	storePath   string
	storeKey    string

	// comparison
	maxTools int

	// auto refresh
	autoRefreshEnabled  bool
	autoRefreshInterval time.Duration

	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

func defaults() *options {
	return &options{
		timeout:             constants.DefaultHTTPTimeout,
		storeDriver:         kvstore.DriverFile,
		storeKey:            constants.DefaultStoreKey,
		maxTools:            constants.MaxComparisonTools,
		autoRefreshInterval: constants.DefaultRefreshInterval,
		logger:              logging.Default(),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Option is a function that configures a Client
type Option func(*options) error

// WithRemote configures the comparison API. A url is required, a token can be
// provided for authentication, otherwise use nil to send no credentials.
func WithRemote(url string, token *string) Option {
	return func(o *options) error {
		if url == "" {
			return &errors.ValidationError{Field: "api_url", Message: "cannot be empty"}
		}
		o.remoteURL = url
		o.token = token
		return nil
	}
}

// WithRemoteAuth configures how the token is sent. Defaults to a bearer token.
func WithRemoteAuth(cfg transport.AuthConfig) Option {
	return func(o *options) error {
		o.auth = cfg
		return nil
	}
}

// WithTimeout configures the per-request timeout for the comparison API
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return &errors.ValidationError{Field: "api_timeout", Value: timeout, Message: "must be positive"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithRemoteStore uses a custom RemoteStore instead of the HTTP client.
// If it also implements comparison.ToolResolver it is used for tool details.
func WithRemoteStore(rs comparison.RemoteStore) Option {
	return func(o *options) error {
		o.remote = rs
		return nil
	}
}

// WithResolver configures where tool details come from.
func WithResolver(r comparison.ToolResolver) Option {
	return func(o *options) error {
		o.resolver = r
		return nil
	}
}

// WithStore uses an existing store for the local cache. The client does not close it.
func WithStore(store kvstore.Store) Option {
	return func(o *options) error {
		if store == nil {
			return &errors.ValidationError{Field: "store", Message: "cannot be nil"}
		}
		o.store = store
		return nil
	}
}

// WithStoreDriver configures the local store the client opens and closes.
// An empty path uses the driver's default location.
func WithStoreDriver(driver kvstore.Driver, path string) Option {
	return func(o *options) error {
		d, err := kvstore.ParseDriver(string(driver))
		if err != nil {
			return err
		}
		o.storeDriver = d
		o.storePath = path
		return nil
	}
}

// WithStoreKey configures the key the comparison is persisted under
func WithStoreKey(key string) Option {
	return func(o *options) error {
		if key == "" {
			return &errors.ValidationError{Field: "store_key", Message: "cannot be empty"}
		}
		o.storeKey = key
		return nil
	}
}

// WithMaxTools lowers the comparison capacity
func WithMaxTools(n int) Option {
	return func(o *options) error {
		o.maxTools = n
		return nil
	}
}

// WithAutoRefresh configures whether the comparison is reloaded in the background
func WithAutoRefresh(enabled bool) Option {
	return func(o *options) error {
		o.autoRefreshEnabled = enabled
		return nil
	}
}

// WithAutoRefreshInterval configures how often to reload the comparison
func WithAutoRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoRefreshInterval = interval
		return nil
	}
}

// WithMetrics records reconciler events in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithLogger configures the logger used when a call context carries none
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
