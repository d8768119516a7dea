package roster

import "errors"

// Collaborator and input errors.
var (
	// ErrNotAuthorized is returned when the employee service rejects the
	// current credentials. Callers must re-authenticate; it is never retried.
	ErrNotAuthorized = errors.New("roster: not authorized")

	// ErrTransientFetch wraps network, status and decode failures while talking
	// to the employee service. The last known roster stays in place.
	ErrTransientFetch = errors.New("roster: fetch failed")

	// ErrInvalidInput is returned when a caller passes a value the view layer
	// cannot accept, such as a non-positive page size.
	ErrInvalidInput = errors.New("roster: invalid input")

	// ErrInvalidRecord is returned when a record fails validation before a mutation.
	ErrInvalidRecord = errors.New("roster: invalid record")

	// ErrRecordNotFound is returned when no record carries the requested ID.
	ErrRecordNotFound = errors.New("roster: record not found")
)
