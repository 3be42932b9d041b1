package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the requested tenant does not exist
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidStatus is returned when a status update uses a value other
	// than active or suspended
	ErrInvalidStatus = errors.New("tenant status must be active or suspended")
)
