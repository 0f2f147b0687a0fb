// Package handler implements the HTTP endpoints of the StudioHub API.
//
// Handlers are thin: they decode the request, resolve the acting user from
// the auth context, call one service method and write the result through the
// shared response envelope (WriteData / WriteCollection). Service errors are
// translated to RFC 9457 Problem Details centrally by MapServiceError, so no
// handler hand-picks status codes.
//
// Endpoints that act on domain entities load the full actor record via
// actorFromRequest because authorization decisions (CanModify, privileged
// gates) need the role, not just the token claims.
package handler
