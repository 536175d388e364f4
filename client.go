// Package toolcompare keeps a user's "tools selected for comparison" in sync
// between the comparison API and a local persistent cache.
//
// The remote comparison is authoritative whenever it is reachable. When it is
// not, every operation degrades to the local cache, so a disconnected client
// can still build and edit a comparison. At most five tools can be compared.
//
// Example usage:
//
//	token := os.Getenv("TOOLCOMPARE_API_TOKEN")
//	tc, err := toolcompare.New(
//	    toolcompare.WithRemote("https://api.example.com", &token),
//	    toolcompare.WithStoreDriver(kvstore.DriverBolt, ""),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tc.Close()
//
//	tc.OnFallback(func(op string, class errors.RemoteClass) {
//	    log.Printf("%s served locally (%s)", op, class)
//	})
//
//	set := tc.Load(ctx)
//	if err := tc.Add(ctx, "notion"); errors.IsLimitExceeded(err) {
//	    fmt.Println("remove a tool before adding another")
//	}
package toolcompare

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/internal/localcache"
	"github.com/agentstation/toolcompare/internal/remote"
	"github.com/agentstation/toolcompare/internal/transport"
	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Comparison is the set of operations on the comparison.
type Comparison interface {
	// Load fetches the comparison, preferring the remote. It never fails.
	Load(ctx context.Context) comparison.Set

	// Add adds a tool. It fails only with AlreadyPresentError, LimitError,
	// a validation error for an empty id, or an IOError if the cache cannot be written.
	Add(ctx context.Context, toolID string) error

	// Remove removes a tool. Removing an absent tool succeeds.
	Remove(ctx context.Context, toolID string) error

	// Clear empties the local comparison without contacting the remote.
	Clear(ctx context.Context) error

	// Tools returns a copy of the in-memory comparison.
	Tools() comparison.Set

	// State returns whether the comparison was loaded from the remote or the local cache.
	State() comparison.State

	// Status returns a snapshot of the comparison state.
	Status() comparison.Status
}

// Client manages a comparison with event hooks and optional auto-refresh.
type Client interface {

	// Comparison provides the comparison operations
	Comparison

	// AutoRefresher provides access to background refresh controls
	AutoRefresher

	// Hooks provides access to event callback registration
	Hooks

	// Close stops auto-refresh and releases the local store if the client opened it.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// reconciler owns the comparison state
	reconciler *comparison.Reconciler

	// store is the local key-value store, closed on Close when owned
	store      kvstore.Store
	ownsStore  bool
	closeOnce  sync.Once
	closeError error

	// auto refresh state
	refreshMu     sync.Mutex
	refreshTicker *time.Ticker
	refreshCancel context.CancelFunc
	stopCh        chan struct{}

	hooks *hooks // Event hooks for comparison changes
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		stopCh:  make(chan struct{}),
		hooks:   newHooks(),
	}

	log := o.logger.Debug()

	// open the local store unless one was injected
	c.store, c.ownsStore = o.store, false
	if c.store == nil {
		if c.store, err = kvstore.Open(o.storeDriver, o.storePath); err != nil {
			return nil, errors.WrapResource("open", "local store", string(o.storeDriver), err)
		}
		c.ownsStore = true
	}
	log.Str("driver", string(o.storeDriver)).Bool("owned", c.ownsStore).Msg("Local store ready")

	remoteStore, err := o.buildRemote()
	if err != nil {
		c.closeStore()
		return nil, err
	}

	observers := comparison.Observers{&hookObserver{hooks: c.hooks}}
	if o.metrics != nil {
		observers = append(observers, o.metrics)
	}
	reconcilerOpts := []comparison.Option{
		comparison.WithMaxTools(o.maxTools),
		comparison.WithObserver(observers),
		comparison.WithLogger(o.logger),
	}
	if o.resolver != nil {
		reconcilerOpts = append(reconcilerOpts, comparison.WithResolver(o.resolver))
	}

	cache := localcache.New(c.store, localcache.WithKey(o.storeKey))
	if c.reconciler, err = comparison.New(remoteStore, cache, reconcilerOpts...); err != nil {
		c.closeStore()
		return nil, err
	}

	if o.autoRefreshEnabled {
		if err := c.AutoRefreshOn(); err != nil {
			c.closeStore()
			return nil, errors.WrapResource("start", "auto-refresh", "", err)
		}
	}

	return c, nil
}

// buildRemote returns the configured remote store, or nil to run local-only.
func (o *options) buildRemote() (comparison.RemoteStore, error) {
	if o.remote != nil {
		return o.remote, nil
	}
	if o.remoteURL == "" {
		return nil, nil
	}

	topts := []transport.Option{
		transport.WithTimeout(o.timeout),
		transport.WithAuthenticator(transport.NewAuthenticator(o.auth)),
	}
	if o.token != nil {
		topts = append(topts, transport.WithToken(*o.token))
	}
	rc, err := remote.NewFromURL(o.remoteURL, topts...)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// Load implements Comparison.
func (c *client) Load(ctx context.Context) comparison.Set {
	before := c.reconciler.Local(ctx)
	set := c.reconciler.Load(ctx)
	c.hooks.triggerChange(before, set)
	return set
}

// Add implements Comparison.
func (c *client) Add(ctx context.Context, toolID string) error {
	before := c.reconciler.Local(ctx)
	err := c.reconciler.Add(ctx, toolID)
	c.changed(before, err)
	return err
}

// Remove implements Comparison.
func (c *client) Remove(ctx context.Context, toolID string) error {
	before := c.reconciler.Local(ctx)
	err := c.reconciler.Remove(ctx, toolID)
	c.changed(before, err)
	return err
}

// Clear implements Comparison.
func (c *client) Clear(ctx context.Context) error {
	before := c.reconciler.Local(ctx)
	err := c.reconciler.Clear(ctx)
	c.hooks.triggerCleared(before)
	return err
}

// changed fires change hooks against the local copy the operation started from.
// Rejected operations leave the comparison untouched. A failed write still
// updates the in-memory view, so it fires hooks too.
func (c *client) changed(before comparison.Set, err error) {
	if err != nil && !errors.IsIOError(err) {
		return
	}
	c.hooks.triggerChange(before, c.reconciler.Tools())
}

// Tools implements Comparison.
func (c *client) Tools() comparison.Set {
	return c.reconciler.Tools()
}

// State implements Comparison.
func (c *client) State() comparison.State {
	return c.reconciler.State()
}

// Status implements Comparison.
func (c *client) Status() comparison.Status {
	return c.reconciler.Status()
}

// Close implements Client.
func (c *client) Close() error {
	c.closeOnce.Do(func() {
		if err := c.AutoRefreshOff(); err != nil {
			c.closeError = err
			return
		}
		c.closeError = c.closeStore()
	})
	return c.closeError
}

func (c *client) closeStore() error {
	if !c.ownsStore || c.store == nil {
		return nil
	}
	return errors.WrapResource("close", "local store", string(c.options.storeDriver), c.store.Close())
}
