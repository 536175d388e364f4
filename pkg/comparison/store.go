package comparison

import (
	"context"

	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// RemoteStore is the server-side comparison, authoritative when reachable.
type RemoteStore interface {
	// List returns the remote comparison in order.
	List(ctx context.Context) ([]tools.Tool, error)

	// Add adds a tool to the remote comparison.
	Add(ctx context.Context, toolID string) error

	// Remove removes a tool from the remote comparison. Removing an absent tool succeeds.
	Remove(ctx context.Context, toolID string) error
}

// ToolResolver fetches full tool details for an ID.
type ToolResolver interface {
	Tool(ctx context.Context, toolID string) (tools.Tool, error)
}

// LocalCache is the client-persisted fallback copy of the comparison.
type LocalCache interface {
	// Load returns the persisted set. A missing entry is an empty set, not an error.
	Load() (Set, error)

	// Save replaces the persisted set.
	Save(Set) error
}

// Offline is a RemoteStore and ToolResolver for clients with no remote configured.
// Every call fails with a not-configured RemoteError, so the reconciler always runs local-only.
type Offline struct{}

var (
	_ RemoteStore  = Offline{}
	_ ToolResolver = Offline{}
)

// List implements RemoteStore.
func (Offline) List(context.Context) ([]tools.Tool, error) {
	return nil, notConfigured("list")
}

// Add implements RemoteStore.
func (Offline) Add(context.Context, string) error {
	return notConfigured("add")
}

// Remove implements RemoteStore.
func (Offline) Remove(context.Context, string) error {
	return notConfigured("remove")
}

// Tool implements ToolResolver.
func (Offline) Tool(context.Context, string) (tools.Tool, error) {
	return tools.Tool{}, notConfigured("tool")
}

func notConfigured(op string) error {
	return &errors.RemoteError{Operation: op, Class: errors.RemoteClassNotConfigured}
}
