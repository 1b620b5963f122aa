package auth

import "errors"

// Auth-related errors
var (
	// ErrInvalidCredentials indicates a failed username/password check
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized indicates the request carried no resolvable identity
	ErrUnauthorized = errors.New("authentication required")

	// ErrAdminRequired indicates a resolved identity without the admin role
	ErrAdminRequired = errors.New("admin access required")
)
