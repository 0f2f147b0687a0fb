// Package repository implements the data access layer for the StudioHub API.
//
// The repository package contains all gateway operations using SurrealDB.
// Each repository struct handles CRUD operations for a specific domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, GetByID, Update, Delete, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// # Wire Format
//
// Records travel as snake_case documents. Thread entries (ticket and wishlist
// comments) and inventory history are embedded wholesale in their parent
// record, never normalized into their own table. Decoding goes through
// per-entity parse functions that normalize SurrealDB record IDs and datetime
// values before mapping onto the model structs.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//
// # Example Usage
//
//	repo := NewBookingRepository(db)
//	booking, err := repo.GetByID(ctx, "booking:abc123")
//	if err != nil {
//	    if errors.Is(err, database.ErrNotFound) {
//	        // Handle not found
//	    }
//	    return err
//	}
package repository
