package podmonitor

import (
	"context"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

// Cluster is the port to the cluster's pod API.
type Cluster interface {
	// WatchPodsQuery streams pod events of the namespace. The channel is closed
	// when the stream ends.
	WatchPodsQuery(ctx context.Context, namespace string) (<-chan PodEvent, error)
	GetPodLogQuery(ctx context.Context, namespace, name string, tailLines int64) (string, error)
}

// Store is the port to the configuration store.
type Store interface {
	Txn(ctx context.Context, fn func(tx domain.Txn) error) error
}
