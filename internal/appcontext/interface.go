// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App type so they can be tested against a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/toolcompare"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/toolcompare/app implements this interface.
type Interface interface {
	// Client returns the comparison client, creating it lazily if needed.
	// This is thread-safe and ensures only one instance is created.
	Client() (toolcompare.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
