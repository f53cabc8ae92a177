package domain

import (
	"context"
	"time"
)

// Txn is a consistent view of the configuration store. Implementations commit
// the writes made through it atomically when the transaction function returns
// nil, and may run the function more than once on conflict.
type Txn interface {
	ListDeployments() ([]string, error)
	GetDeployment(id string) (*Deployment, error)
	GetProcessingBlockState(pbID string) (ProcessingBlockState, error)
	UpdateProcessingBlockState(pbID string, state ProcessingBlockState) error
}

// Watcher blocks until the store changes or the timeout passes.
// A wake-up without a change is allowed.
type Watcher interface {
	Wait(ctx context.Context, timeout time.Duration) error
	Close() error
}
