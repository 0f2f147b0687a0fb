// Package jwt provides JSON Web Token utilities for the StudioHub API.
//
// Tokens are signed with RS256. The service loads PEM-encoded RSA keys
// from disk; a validation-only deployment may configure just the public
// key.
//
// # Signing
//
// Sign claims for an authenticated user:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "studiohub-api",
//	    ExpirationMins: 15,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject: user.ID,
//	    UserID:  user.ID,
//	    Email:   user.Email,
//	    Role:    string(user.Role),
//	})
//
// # Validation
//
// Validate a token and extract its claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid, expired, or tampered token
//	}
//	userID := claims.UserID
//
// Expiry, not-before, signature, and issuer are all checked. The typed
// errors (ErrTokenExpired, ErrInvalidSignature, ...) let callers map
// failures to distinct responses.
package jwt
