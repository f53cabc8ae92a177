package appstate

import (
	"context"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/pinger"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
)

// Reporter is a component that exposes a named state in the status report.
type Reporter interface {
	Name() string
	Status() string
}

// pingerServer is an internal interface for pinger management
type pingerServer interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
	Register(pinger pinger.Pinger) error
	GetAllStats() map[string]*pinger.Statistics
}
