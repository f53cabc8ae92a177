package config

import "errors"

var (
	// ErrBelowMinimum is returned when a duration is shorter than allowed.
	ErrBelowMinimum = errors.New("value below minimum")

	// ErrInvalidRepository is returned for a malformed chart repository entry.
	ErrInvalidRepository = errors.New("invalid chart repository")
)
