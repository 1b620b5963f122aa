package user

import "errors"

// User-related errors
var (
	// Validation errors
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrUsernameTaken = errors.New("username already exists")
	ErrInvalidRole   = errors.New("role must be admin or user")

	// Business logic errors
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotDeleteAdmin = errors.New("admin accounts cannot be deleted")
)
