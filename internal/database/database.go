// Package database provides the persistence gateway abstraction for StudioHub.
//
// The package defines the Database interface that abstracts the remote table
// store, keeping business logic independent of the concrete driver. The
// gateway contract is deliberately minimal: per-table select-all,
// select-by-id, insert, update-by-id, and delete-by-id are all expressible
// through three query methods:
//
//   - Query: Returns multiple results (SELECT queries returning lists)
//   - QueryOne: Returns a single result (SELECT by id)
//   - Execute: No return value (CREATE/UPDATE/DELETE mutations)
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Gateway unreachable or handshake failure
//   - ErrQuery: Query execution failure
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// A connection-class error surfacing from a bulk fetch is what flips the
// snapshot service into degraded mode; see internal/service.
package database

import (
	"context"
	"errors"
)

// Standard errors for gateway operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the gateway.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for persistence gateway operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds gateway connection configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
