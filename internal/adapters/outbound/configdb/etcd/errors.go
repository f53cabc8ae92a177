package etcd

import "errors"

var (
	// ErrTxnConflict is returned when a transaction keeps losing to concurrent writers.
	ErrTxnConflict = errors.New("transaction conflict")

	// ErrWatchClosed is returned when the server closes the watch stream.
	ErrWatchClosed = errors.New("watch stream closed")
)
