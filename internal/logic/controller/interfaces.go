package controller

import (
	"context"
	"time"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/deployer"
)

// Store is the port to the configuration store.
type Store interface {
	Txn(ctx context.Context, fn func(tx domain.Txn) error) error
	Watch(ctx context.Context) (domain.Watcher, error)
}

// Inventory reports the deployment ids with a live release.
type Inventory interface {
	List(ctx context.Context) ([]string, error)
}

// Executor creates and deletes releases for deployments.
type Executor interface {
	Create(ctx context.Context, id string, dpl *domain.Deployment) (deployer.Outcome, error)
	Delete(ctx context.Context, id string) error
}

// RepoRefresher keeps chart repository indexes current.
type RepoRefresher interface {
	Refresh(ctx context.Context)
}

// Schedule yields the next chart repository refresh time.
type Schedule interface {
	Next(after time.Time) time.Time
}
