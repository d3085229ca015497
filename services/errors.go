package services

import "errors"

// Sentinel errors shared by the resource services. Controllers translate
// these into HTTP statuses with errors.Is.
var (
	// ErrNotFound means the requested user, match or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a write collided with existing state, e.g. a
	// registration against an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrForbidden means the caller is not a participant of the resource.
	ErrForbidden = errors.New("forbidden")
)
