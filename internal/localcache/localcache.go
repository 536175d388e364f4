// Package localcache persists the comparison set in a kvstore.Store.
//
// The set is written as a versioned JSON envelope under a single key. A bare
// JSON array of tools under the same key is also accepted on read.
package localcache

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/utc"

	"github.com/agentstation/toolcompare/internal/kvstore"
	"github.com/agentstation/toolcompare/pkg/comparison"
	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// document is the persisted form of the comparison.
type document struct {
	Version int          `json:"version"`
	SavedAt utc.Time     `json:"saved_at"`
	Tools   []tools.Tool `json:"tools"`
}

// Cache implements comparison.LocalCache on top of a kvstore.Store.
type Cache struct {
	store kvstore.Store
	key   string
}

var _ comparison.LocalCache = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithKey sets the key the comparison is stored under.
func WithKey(key string) Option {
	return func(c *Cache) {
		if key != "" {
			c.key = key
		}
	}
}

// New creates a Cache over store.
func New(store kvstore.Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		key:   constants.DefaultStoreKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the store key in use.
func (c *Cache) Key() string {
	return c.key
}

// Load implements comparison.LocalCache. A missing entry loads as an empty set
// and undecodable data returns a CorruptError.
func (c *Cache) Load() (comparison.Set, error) {
	raw, found, err := c.store.Get(c.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return comparison.Set{}, nil
	}

	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return comparison.Set{}, nil
	}

	var list []tools.Tool
	if data[0] == '[' {
		err = json.Unmarshal(data, &list)
	} else {
		var doc document
		err = json.Unmarshal(data, &doc)
		if err == nil && doc.Version > constants.StoreFormatVersion {
			err = errors.New("unsupported format version")
		}
		list = doc.Tools
	}
	if err != nil {
		return nil, errors.NewCorruptError(c.key, err)
	}
	if list == nil {
		return comparison.Set{}, nil
	}
	return comparison.Set(list), nil
}

// Save implements comparison.LocalCache.
func (c *Cache) Save(set comparison.Set) error {
	doc := document{
		Version: constants.StoreFormatVersion,
		SavedAt: utc.Now(),
		Tools:   []tools.Tool(set.Clone()),
	}
	raw, err := json.Marshal(&doc)
	if err != nil {
		return errors.WrapParse("json", c.key, err)
	}
	return c.store.Set(c.key, string(raw))
}
