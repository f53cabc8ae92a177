package domain

import "errors"

var (
	// ErrNotFound is returned by the store when a key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a stored record fails schema validation.
	ErrValidation = errors.New("validation failed")
)
