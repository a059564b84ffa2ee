package domain

import "errors"

// Sentinel errors for the lifecycle services. Services wrap these with
// context via fmt.Errorf("...: %w", Err...) and the HTTP layer maps them
// to status codes with errors.Is.
var (
	// ErrValidation marks malformed or out-of-range input fields.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a natural-key collision on create (tax id, email, parcel id).
	ErrConflict = errors.New("already exists")

	// ErrNotFound marks an unresolvable id or natural key, and the
	// "no rows where none is an acceptable answer" query results.
	ErrNotFound = errors.New("not found")

	// ErrState marks a mutation against an entity that cannot accept it:
	// updates to soft-deleted rows and illegal repair status transitions.
	ErrState = errors.New("invalid state")
)
