package pinger

import "errors"

var (
	// ErrPingerNotFound is returned when no pinger is registered under a name.
	ErrPingerNotFound = errors.New("pinger not found")

	// ErrPingerAlreadyRegistered is returned when a name is registered twice.
	ErrPingerAlreadyRegistered = errors.New("pinger already registered")

	ErrNilPinger = errors.New("pinger cannot be nil")
)
