package podmonitor

import "errors"

var (
	ErrNotRunning = errors.New("pod monitor is not running")
	ErrStopped    = errors.New("pod monitor stopped")
)
