// Package kvstore provides the synchronous, process-local key-value stores the
// local comparison cache is persisted in.
package kvstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/errors"
)

// Store is a string key-value store that survives restarts. Entries never expire.
type Store interface {
	// Get returns the value for key and whether it was found.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Close releases the store.
	Close() error
}

// Driver names a Store implementation.
type Driver string

// Supported drivers.
const (
	DriverMemory Driver = "memory"
	DriverFile   Driver = "file"
	DriverBolt   Driver = "bolt"
	DriverSQLite Driver = "sqlite"
)

// Drivers lists every supported driver.
func Drivers() []Driver {
	return []Driver{DriverFile, DriverBolt, DriverSQLite, DriverMemory}
}

// ParseDriver parses a driver name. An empty name selects DriverFile.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DriverFile, nil
	case DriverMemory, DriverFile, DriverBolt, DriverSQLite:
		return d, nil
	default:
		return "", &errors.ValidationError{
			Field:   "store_driver",
			Value:   s,
			Message: "must be one of file, bolt, sqlite, memory",
		}
	}
}

// fileNames are the default file names per driver.
var fileNames = map[Driver]string{
	DriverFile:   "comparison.json",
	DriverBolt:   "comparison.db",
	DriverSQLite: "comparison.sqlite",
}

// DefaultPath returns the default location for driver under the user config directory.
func DefaultPath(driver Driver) (string, error) {
	name, ok := fileNames[driver]
	if !ok {
		return "", nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.WrapIO("resolve", "config directory", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, constants.DefaultStoreDir, name), nil
}

// Open opens a Store. An empty path uses DefaultPath; the memory driver ignores path.
func Open(driver Driver, path string) (Store, error) {
	if driver == DriverMemory {
		return NewMemory(), nil
	}

	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath(driver)
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	switch driver {
	case DriverFile:
		return OpenFile(path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		_, err := ParseDriver(string(driver))
		return nil, err
	}
}
