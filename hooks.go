package toolcompare

import (
	"reflect"
	"sync"

	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*hooks)(nil)

// Hook function types for comparison events
type (
	// ToolAddedHook is called when a tool enters the comparison
	ToolAddedHook func(tool tools.Tool)

	// ToolUpdatedHook is called when a tool's details change, e.g. a placeholder is refreshed
	ToolUpdatedHook func(old, new tools.Tool)

	// ToolRemovedHook is called when a tool leaves the comparison
	ToolRemovedHook func(tool tools.Tool)

	// ClearedHook is called after Clear with the tools that were removed
	ClearedHook func(removed comparison.Set)

	// FallbackHook is called when an operation is served from the local cache
	FallbackHook func(op string, class errors.RemoteClass)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnToolAdded(fn ToolAddedHook)
	OnToolUpdated(fn ToolUpdatedHook)
	OnToolRemoved(fn ToolRemovedHook)
	OnCleared(fn ClearedHook)
	OnFallback(fn FallbackHook)
}

// hooks manages event callbacks for comparison changes
type hooks struct {
	mu            sync.RWMutex
	onToolAdded   []ToolAddedHook
	onToolUpdated []ToolUpdatedHook
	onToolRemoved []ToolRemovedHook
	onCleared     []ClearedHook
	onFallback    []FallbackHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnToolAdded registers a callback for when tools are added
func (h *hooks) OnToolAdded(fn ToolAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onToolAdded = append(h.onToolAdded, fn)
}

// OnToolUpdated registers a callback for when tool details change
func (h *hooks) OnToolUpdated(fn ToolUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onToolUpdated = append(h.onToolUpdated, fn)
}

// OnToolRemoved registers a callback for when tools are removed
func (h *hooks) OnToolRemoved(fn ToolRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onToolRemoved = append(h.onToolRemoved, fn)
}

// OnCleared registers a callback for when the comparison is cleared
func (h *hooks) OnCleared(fn ClearedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCleared = append(h.onCleared, fn)
}

// OnFallback registers a callback for when the remote fails and the local cache is used
func (h *hooks) OnFallback(fn FallbackHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFallback = append(h.onFallback, fn)
}

// OnToolAdded implements Hooks.
func (c *client) OnToolAdded(fn ToolAddedHook) { c.hooks.OnToolAdded(fn) }

// OnToolUpdated implements Hooks.
func (c *client) OnToolUpdated(fn ToolUpdatedHook) { c.hooks.OnToolUpdated(fn) }

// OnToolRemoved implements Hooks.
func (c *client) OnToolRemoved(fn ToolRemovedHook) { c.hooks.OnToolRemoved(fn) }

// OnCleared implements Hooks.
func (c *client) OnCleared(fn ClearedHook) { c.hooks.OnCleared(fn) }

// OnFallback implements Hooks.
func (c *client) OnFallback(fn FallbackHook) { c.hooks.OnFallback(fn) }

// triggerChange compares old and new sets and triggers the matching hooks
func (h *hooks) triggerChange(oldSet, newSet comparison.Set) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	oldTools := make(map[string]tools.Tool, len(oldSet))
	for _, t := range oldSet {
		oldTools[t.ID] = t
	}
	newTools := make(map[string]struct{}, len(newSet))

	for _, t := range newSet {
		newTools[t.ID] = struct{}{}
		old, exists := oldTools[t.ID]
		if !exists {
			for _, hook := range h.onToolAdded {
				hook(t)
			}
			continue
		}
		if !sameDetails(old, t) {
			for _, hook := range h.onToolUpdated {
				hook(old, t)
			}
		}
	}

	for _, t := range oldSet {
		if _, exists := newTools[t.ID]; !exists {
			for _, hook := range h.onToolRemoved {
				hook(t)
			}
		}
	}
}

// triggerCleared fires the cleared hooks with what was removed
func (h *hooks) triggerCleared(removed comparison.Set) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onCleared {
		hook(removed.Clone())
	}
}

func (h *hooks) triggerFallback(op string, class errors.RemoteClass) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onFallback {
		hook(op, class)
	}
}

// sameDetails compares two summaries ignoring when they were added.
func sameDetails(a, b tools.Tool) bool {
	a.AddedAt, b.AddedAt = nil, nil
	return reflect.DeepEqual(a, b)
}

// hookObserver forwards reconciler fallbacks to the fallback hooks.
type hookObserver struct {
	hooks *hooks
}

func (o *hookObserver) ObserveRemote(string, error) {}

func (o *hookObserver) ObserveFallback(op string, class errors.RemoteClass) {
	o.hooks.triggerFallback(op, class)
}

func (o *hookObserver) ObserveRejection(string) {}

func (o *hookObserver) ObserveSize(int) {}
