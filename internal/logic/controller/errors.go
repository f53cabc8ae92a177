package controller

import "errors"

var (
	// ErrStoreAccess is returned when the configuration store cannot be read.
	// It ends the reconciliation loop.
	ErrStoreAccess = errors.New("configuration store access")

	ErrNotReady = errors.New("controller service is not ready")
	ErrStale    = errors.New("last reconcile was too long ago")
)
