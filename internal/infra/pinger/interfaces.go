package pinger

import (
	"context"
	"time"
)

// Pinger is a component with a health check.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Optional pinger settings. A pinger is ready and health critical with the
// default timeout unless it says otherwise.
type (
	readyCriticalPinger interface {
		PingerReadyCritical() bool
	}

	healthCriticalPinger interface {
		PingerCritical() bool
	}

	timeoutPinger interface {
		PingerTimeout() time.Duration
	}
)
