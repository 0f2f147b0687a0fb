// Package model defines domain entities and data structures for the StudioHub API.
//
// The model package contains all struct definitions for domain objects and error
// definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - User: Application user with role and verification flags
//   - Booking: A room or equipment reservation with a status lifecycle
//   - InventoryItem: A tracked piece of studio equipment
//   - RequestTicket: A support/helpdesk ticket with a comment thread
//   - WishlistItem: A community proposal with toggle-voting
//   - Event: A published studio event with registration counts
//   - UserTask: A personal planner entry, optionally assigned by an admin
//   - Notification: A per-recipient message with a read flag
//
// # JSON Serialization
//
// All models use flat snake_case json struct tags. The same field names are used
// at the persistence boundary, so the repository codecs stay total and lossless:
//
//	type Booking struct {
//	    ID           string `json:"id"`
//	    ResourceName string `json:"resource_name"`
//	    StartTime    time.Time `json:"start_time"`
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
