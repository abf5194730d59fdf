// Package constants provides shared constants used throughout the invsync
// codebase. This includes timeouts, paging sizes, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// inventory and directory APIs
	DefaultHTTPTimeout = 30 * time.Second

	// ConnectivityCheckTimeout is the timeout for the pre-run reachability
	// checks against both systems
	ConnectivityCheckTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Paging constants for directory reads
const (
	// DefaultPageSize is the number of items requested per page when listing
	// directory groups and devices
	DefaultPageSize = 20

	// MaxPageSize is the largest page size the directory APIs accept
	MaxPageSize = 100
)

// Network constants
const (
	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 10 * time.Second

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections = 10
)
