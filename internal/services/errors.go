package services

import "errors"

// Sentinel errors returned by the service layer. Controllers match these
// with errors.Is and map them onto HTTP status codes; anything else is
// treated as a persistence failure.
var (
	// ErrValidation marks malformed or missing caller input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a guarded state transition that matched zero rows:
	// the donation was already claimed, the transaction already assigned,
	// or the requested transition is not a legal forward step.
	ErrConflict = errors.New("conflicting state")
	// ErrNotFound marks a reference to a row that does not exist.
	ErrNotFound = errors.New("not found")
)
