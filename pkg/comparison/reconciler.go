// Package comparison keeps the set of tools a user is comparing consistent
// between the remote comparison service and a local persistent cache.
//
// Precedence is explicit:
//   - Load: remote wins; the remote set replaces the local copy. On any remote
//     failure the local copy is returned unchanged.
//   - Add: preconditions are checked against the local view, then the remote is
//     tried first. A remote failure falls back to a purely local add.
//   - Remove: the remote is tried, and the local copy is updated regardless.
//   - Clear: local only.
//
// Operations are not serialized. Two concurrent Adds may both pass the
// duplicate and limit checks; the next Load reconciles.
package comparison

import (
	"context"
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/logging"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// Reconciler composes a RemoteStore and a LocalCache.
type Reconciler struct {
	remote   RemoteStore
	resolver ToolResolver
	local    LocalCache
	maxTools int
	observer Observer
	logger   *zerolog.Logger

	mu         sync.RWMutex
	view       Set
	state      State
	lastSync   utc.Time
	lastRemote errors.RemoteClass
}

// Status is a point-in-time summary of a Reconciler.
type Status struct {
	State    State              `json:"state" yaml:"state"`
	Size     int                `json:"size" yaml:"size"`
	Capacity int                `json:"capacity" yaml:"capacity"`
	LastSync *utc.Time          `json:"last_sync,omitempty" yaml:"last_sync,omitempty"`
	Remote   errors.RemoteClass `json:"remote_error,omitempty" yaml:"remote_error,omitempty"`
}

// New creates a Reconciler. A nil remote means the reconciler always runs local-only.
func New(remote RemoteStore, local LocalCache, opts ...Option) (*Reconciler, error) {
	if local == nil {
		return nil, &errors.ValidationError{Field: "local", Message: "cannot be nil"}
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if remote == nil {
		remote = Offline{}
	}
	resolver := o.resolver
	if resolver == nil {
		if r, ok := remote.(ToolResolver); ok {
			resolver = r
		} else {
			resolver = Offline{}
		}
	}

	return &Reconciler{
		remote:   remote,
		resolver: resolver,
		local:    local,
		maxTools: o.maxTools,
		observer: o.observer,
		logger:   o.logger,
		view:     Set{},
		state:    StateUnloaded,
	}, nil
}

// Load fetches the remote comparison and makes it the local copy. When the
// remote fails the last persisted local copy is returned. Load never fails.
func (r *Reconciler) Load(ctx context.Context) Set {
	ctx = r.withLogger(ctx, "load")
	log := logging.FromContext(ctx)

	remoteTools, err := r.remote.List(ctx)
	r.observer.ObserveRemote("list", err)
	if err != nil {
		r.fallback(ctx, "list", err)
		local := r.readLocal(ctx)
		r.transition(local, StateLocalOnly)
		return local.Clone()
	}

	set, dropped := Normalize(Set(remoteTools), r.maxTools)
	if dropped > 0 {
		log.Warn().
			Int("dropped", dropped).
			Int("received", len(remoteTools)).
			Msg("Remote comparison violated set invariants, normalized")
	}
	if err := r.local.Save(set); err != nil {
		log.Warn().Err(err).Msg("Failed to persist remote comparison locally")
	}

	r.mu.Lock()
	r.lastSync = utc.Now()
	r.lastRemote = ""
	r.mu.Unlock()
	r.transition(set, StateSynced)

	log.Debug().Int("size", set.Len()).Msg("Loaded comparison from remote")
	return set.Clone()
}

// Add adds toolID to the comparison. It returns an AlreadyPresentError or
// LimitError when the local view rejects the tool. Remote failures are
// recovered by adding locally.
func (r *Reconciler) Add(ctx context.Context, toolID string) error {
	id := tools.NormalizeID(toolID)
	if id == "" {
		return errors.NewValidationError("tool_id", toolID, "cannot be empty")
	}
	ctx = logging.WithTool(r.withLogger(ctx, "add"), id)
	log := logging.FromContext(ctx)

	if err := r.check(r.readLocal(ctx), id); err != nil {
		return err
	}

	err := r.remote.Add(ctx, id)
	r.observer.ObserveRemote("add", err)
	if err != nil {
		r.fallback(ctx, "add", err)

		current := r.readLocal(ctx)
		if err := r.check(current, id); err != nil {
			return err
		}
		tool := r.resolve(ctx, id)
		log.Debug().Msg("Added tool to local comparison only")
		return r.commit(ctx, current.With(tool.Stamp()))
	}

	tool := r.resolve(ctx, id)

	// The remote accepted the tool; re-read because the local copy may have moved meanwhile.
	current := r.readLocal(ctx)
	switch {
	case current.Contains(id):
		r.setView(current)
		return nil
	case current.Len() >= r.maxTools:
		log.Warn().
			Int("size", current.Len()).
			Msg("Local comparison filled concurrently, next load will reconcile")
		r.setView(current)
		return nil
	}

	log.Debug().Msg("Added tool to comparison")
	return r.commit(ctx, current.With(tool.Stamp()))
}

// Remove removes toolID from the comparison. The local copy is updated whether
// or not the remote call succeeds, and removing an absent tool is a no-op.
func (r *Reconciler) Remove(ctx context.Context, toolID string) error {
	id := tools.NormalizeID(toolID)
	ctx = logging.WithTool(r.withLogger(ctx, "remove"), id)

	if id != "" {
		err := r.remote.Remove(ctx, id)
		r.observer.ObserveRemote("remove", err)
		if err != nil {
			r.fallback(ctx, "remove", err)
		}
	}

	return r.commit(ctx, r.readLocal(ctx).Without(id))
}

// Clear empties the local comparison. The remote is not contacted.
func (r *Reconciler) Clear(ctx context.Context) error {
	ctx = r.withLogger(ctx, "clear")
	return r.commit(ctx, Set{})
}

// Local returns the persisted local comparison, which Add, Remove and Clear
// build on. Unreadable data reads as an empty set.
func (r *Reconciler) Local(ctx context.Context) Set {
	return r.readLocal(r.withLogger(ctx, "local"))
}

// Tools returns a copy of the in-memory view.
func (r *Reconciler) Tools() Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view.Clone()
}

// State returns the current state.
func (r *Reconciler) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Capacity returns the maximum number of tools.
func (r *Reconciler) Capacity() int {
	return r.maxTools
}

// Status returns a snapshot of the reconciler.
func (r *Reconciler) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := Status{
		State:    r.state,
		Size:     r.view.Len(),
		Capacity: r.maxTools,
		Remote:   r.lastRemote,
	}
	if !r.lastSync.IsZero() {
		last := r.lastSync
		status.LastSync = &last
	}
	return status
}

// check validates the duplicate and limit preconditions against current.
func (r *Reconciler) check(current Set, id string) error {
	if current.Contains(id) {
		r.observer.ObserveRejection(ReasonAlreadyPresent)
		return errors.NewAlreadyPresentError(id)
	}
	if current.Len() >= r.maxTools {
		r.observer.ObserveRejection(ReasonLimitExceeded)
		return errors.NewLimitError(id, r.maxTools)
	}
	return nil
}

// readLocal reads and normalizes the local copy. Unreadable or corrupt data reads as empty.
func (r *Reconciler) readLocal(ctx context.Context) Set {
	set, err := r.local.Load()
	if err != nil {
		event := logging.FromContext(ctx).Warn().Err(err)
		if errors.IsLocalStoreCorrupt(err) {
			event.Msg("Local comparison is corrupt, treating as empty")
		} else {
			event.Msg("Failed to read local comparison, treating as empty")
		}
		return Set{}
	}
	normalized, dropped := Normalize(set, r.maxTools)
	if dropped > 0 {
		logging.FromContext(ctx).Warn().Int("dropped", dropped).Msg("Local comparison violated set invariants, normalized")
	}
	return normalized
}

// resolve fetches details for id, falling back to a placeholder summary.
func (r *Reconciler) resolve(ctx context.Context, id string) tools.Tool {
	tool, err := r.resolver.Tool(ctx, id)
	r.observer.ObserveRemote("tool", err)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("Tool details unavailable, storing placeholder")
		return tools.Placeholder(id)
	}
	tool.ID = id
	return tool
}

// commit persists next and makes it the in-memory view. The view is updated
// even when persisting fails.
func (r *Reconciler) commit(ctx context.Context, next Set) error {
	r.setView(next)
	if err := r.local.Save(next); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to persist local comparison")
		return errors.WrapIO("write", "local comparison", err)
	}
	return nil
}

func (r *Reconciler) fallback(ctx context.Context, op string, err error) {
	class := errors.Classify(err)

	r.mu.Lock()
	r.lastRemote = class
	r.mu.Unlock()

	r.observer.ObserveFallback(op, class)

	level := zerolog.WarnLevel
	if class == errors.RemoteClassNotConfigured {
		level = zerolog.DebugLevel
	}
	logging.FromContext(ctx).WithLevel(level).Err(err).
		Str("remote_op", op).
		Str("class", string(class)).
		Msg("Remote comparison unavailable, using local cache")
}

// setView replaces the in-memory view without touching the state.
func (r *Reconciler) setView(set Set) {
	r.mu.Lock()
	r.view = set.Clone()
	r.mu.Unlock()
	r.observer.ObserveSize(set.Len())
}

// transition replaces the in-memory view and moves to state.
func (r *Reconciler) transition(set Set, state State) {
	r.mu.Lock()
	r.view = set.Clone()
	r.state = state
	r.mu.Unlock()
	r.observer.ObserveSize(set.Len())
}

// withLogger attaches the reconciler logger unless the caller already attached one.
func (r *Reconciler) withLogger(ctx context.Context, op string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, r.logger)
	}
	return logging.WithOperation(ctx, op)
}
