package kvstore

import (
	"sync"

	bolt "go.etcd.io/bbolt"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
)

var boltBucket = []byte("toolcompare")

// Bolt is a Store backed by a bbolt database file.
type Bolt struct {
	mu     sync.RWMutex
	db     *bolt.DB
	closed bool
}

var _ Store = (*Bolt)(nil)

// OpenBolt opens or creates a bbolt database at path. Opening fails after
// constants.StoreOpenTimeout if another process holds the file lock.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, constants.SecureFilePermissions, &bolt.Options{Timeout: constants.StoreOpenTimeout})
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("init", path, err)
	}
	return &Bolt{db: db}, nil
}

// Get implements Store.
func (b *Bolt) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return "", false, errors.ErrClosed
	}

	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, errors.WrapIO("read", key, err)
	}
	return value, found, nil
}

// Set implements Store.
func (b *Bolt) Set(key, value string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return errors.ErrClosed
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	return errors.WrapIO("write", key, err)
}

// Close implements Store.
func (b *Bolt) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}
