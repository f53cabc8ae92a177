package app

import (
	"context"
	"os"
	"time"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/appstate"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/pinger"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/controller"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	RegisterReporter(reporter appstate.Reporter)
	SetShutdownTimeout(timeout time.Duration)
	StartPinger(ctx context.Context) (<-chan struct{}, error)
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
	GetComponentStates() map[string]string
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
	CheckTermination(ctx context.Context) error
}

// component is a long running part of the application.
type component interface {
	shutdown.Shutdowner
	Start(ctx context.Context) error
	Ready() <-chan struct{}
}

// configStore is a configuration store backend.
type configStore interface {
	controller.Store
	pinger.Pinger
	shutdown.Shutdowner
}
