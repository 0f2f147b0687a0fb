// Package middleware provides HTTP middleware for the StudioHub API.
//
// The middleware package contains reusable middleware components for
// authentication, authorization, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - AdminAuth: administrative role gate, applied after Auth
//   - RateLimit: request rate limiting per user/IP
//   - Idempotency: idempotent request handling
//
// # Authentication
//
// The auth middleware validates JWT tokens and extracts user information.
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Rate Limiting
//
// Rate limiting protects against abuse with a token bucket per user or
// client address.
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetClaims(ctx): Returns the full JWT claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
