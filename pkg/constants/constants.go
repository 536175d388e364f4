// Package constants provides shared constants used throughout the toolcompare codebase.
package constants

import "time"

// Comparison limits
const (
	// MaxComparisonTools is the maximum number of tools a comparison may hold
	MaxComparisonTools = 5
)

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the comparison API
	DefaultHTTPTimeout = 15 * time.Second

	// StoreOpenTimeout bounds how long opening a file-locked store may wait
	StoreOpenTimeout = 1 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second

	// DefaultRefreshInterval is how often auto-refresh reloads the comparison
	DefaultRefreshInterval = 5 * time.Minute

	// RefreshTimeout bounds a single auto-refresh load
	RefreshTimeout = 30 * time.Second
)

// Local store constants
const (
	// DefaultStoreKey is the key the comparison set is persisted under
	DefaultStoreKey = "comparisonTools"

	// DefaultStoreDir is the directory name under the user config dir
	DefaultStoreDir = "toolcompare"

	// StoreFormatVersion is the version written into persisted envelopes
	StoreFormatVersion = 1
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for the local store, which may hold session data (rw-------)
	SecureFilePermissions = 0600
)

// HTTP header constants
const (
	// HeaderRequestID carries the per-request correlation id
	HeaderRequestID = "X-Request-ID"

	// DefaultUserAgent identifies the client to the comparison API
	DefaultUserAgent = "toolcompare"
)
