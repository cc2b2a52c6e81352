package domain

import "errors"

// Sentinel errors shared across services and the HTTP layer. Handlers map
// these onto status codes; everything else surfaces as a 500.
var (
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidState          = errors.New("invalid state transition")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)
