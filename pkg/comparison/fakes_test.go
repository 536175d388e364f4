package comparison_test

import (
	"context"
	"sync"

	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// fakeRemote is an in-memory RemoteStore and ToolResolver with a failure switch.
type fakeRemote struct {
	mu      sync.Mutex
	set     []tools.Tool
	catalog map[string]tools.Tool
	err     error
	calls   map[string]int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		catalog: map[string]tools.Tool{},
		calls:   map[string]int{},
	}
}

func (f *fakeRemote) down() {
	f.fail(errors.NewRemoteError("call", errors.NewAPIError("/comparison", 503, "maintenance")))
}

func (f *fakeRemote) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeRemote) up() {
	f.fail(nil)
}

func (f *fakeRemote) publish(ts ...tools.Tool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range ts {
		f.catalog[t.ID] = t
	}
}

func (f *fakeRemote) List(context.Context) ([]tools.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.err != nil {
		return nil, f.err
	}
	return append([]tools.Tool(nil), f.set...), nil
}

func (f *fakeRemote) Add(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["add"]++
	if f.err != nil {
		return f.err
	}
	for _, t := range f.set {
		if t.ID == id {
			return nil
		}
	}
	tool, ok := f.catalog[id]
	if !ok {
		tool = tools.Tool{ID: id}
	}
	f.set = append(f.set, tool)
	return nil
}

func (f *fakeRemote) Remove(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["remove"]++
	if f.err != nil {
		return f.err
	}
	out := f.set[:0]
	for _, t := range f.set {
		if t.ID != id {
			out = append(out, t)
		}
	}
	f.set = out
	return nil
}

func (f *fakeRemote) Tool(_ context.Context, id string) (tools.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["tool"]++
	if f.err != nil {
		return tools.Tool{}, f.err
	}
	tool, ok := f.catalog[id]
	if !ok {
		return tools.Tool{}, errors.NewNotFoundError("tool", id)
	}
	return tool, nil
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// memoryCache is a LocalCache held in memory.
type memoryCache struct {
	mu      sync.Mutex
	set     comparison.Set
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryCache) Load() (comparison.Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.set.Clone(), nil
}

func (m *memoryCache) Save(s comparison.Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.set = s.Clone()
	return nil
}

func (m *memoryCache) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set.IDs()
}

// recorder is an Observer that counts events.
type recorder struct {
	mu         sync.Mutex
	remote     map[string]int
	fallbacks  map[string]errors.RemoteClass
	rejections []string
	size       int
}

func newRecorder() *recorder {
	return &recorder{remote: map[string]int{}, fallbacks: map[string]errors.RemoteClass{}}
}

func (r *recorder) ObserveRemote(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		r.remote[op]++
	}
}

func (r *recorder) ObserveFallback(op string, class errors.RemoteClass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks[op] = class
}

func (r *recorder) ObserveRejection(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, reason)
}

func (r *recorder) ObserveSize(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = n
}
