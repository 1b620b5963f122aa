package card

import "errors"

// Card-related errors
var (
	// Validation errors
	ErrInvalidCardID  = errors.New("invalid card ID")
	ErrInvalidStatus  = errors.New("status must be gray, red or green")
	ErrMissingColumn  = errors.New("column ID is required")
	ErrColumnNotFound = errors.New("column not found")

	// Business logic errors
	ErrCardNotFound = errors.New("card not found")
	ErrNotCardOwner = errors.New("only the creator or an admin may delete a card")
	ErrAdminOnly    = errors.New("admin access required")
)
