package domain

import "errors"

var (
	// ErrValidation marks client-caused input failures. Wrap it with the
	// concrete cause; the HTTP layer maps it to 400 with a generic body.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks a missing, expired or non-admin session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned by the store when the target id does not exist.
	ErrNotFound = errors.New("appointment not found")
)
