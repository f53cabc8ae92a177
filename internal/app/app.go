package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb/etcd"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb/memory"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/helm"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/k8s"
	"github.com/skillcoder/helmdeploy-controller/internal/config"
	"github.com/skillcoder/helmdeploy-controller/internal/httpserver"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/cronparser"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/pinger"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shell"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/chartrepo"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/controller"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/deployer"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/release"
)

const etcdDialTimeout = 5 * time.Second

// App wires the controller components and runs them until termination.
type App struct {
	logger     *slog.Logger
	appState   appstater
	signals    signalHandler
	store      configStore
	inventory  *release.Inventory
	controller *controller.Service
	components []component
}

// shutdownMargin is left for the components stopped after the controller.
const shutdownMargin = 30 * time.Second

// New creates a new application instance with all dependencies wired.
func New(logger *slog.Logger, cfg *config.Config, appState appstater) (*App, error) {
	store, err := newStore(logger, cfg)
	if err != nil {
		return nil, err
	}

	runner := shell.New(logger.With("component", "shell"), cfg.HelmTimeout)
	helmAdapter := helm.New(logger.With("component", "helm"), runner, cfg.Helm)
	namer := release.NewNamer(cfg.HelmPrefix)
	inventory := release.NewInventory(logger, helmAdapter, namer, cfg.HelmNamespace)
	executor := deployer.New(logger, helmAdapter, namer, cfg.HelmNamespace, config.OwnRepositoryName, "")

	repos := make([]chartrepo.Repository, 0, len(cfg.ChartRepos))
	for _, r := range cfg.ChartRepos {
		repos = append(repos, chartrepo.Repository{Name: r.Name, URL: r.URL})
	}

	scheduleSpec := cfg.ChartRepoSchedule
	if scheduleSpec == "" {
		scheduleSpec = cronparser.EverySpec(cfg.ChartRepoRefresh)
	}

	schedule, err := cronparser.Parse(scheduleSpec)
	if err != nil {
		return nil, fmt.Errorf("parse chart repository schedule: %w", err)
	}

	controllerService := controller.New(
		logger,
		controller.Dependencies{
			Store:     store,
			Inventory: inventory,
			Executor:  executor,
			Repos:     chartrepo.New(logger, helmAdapter, repos),
			Schedule:  schedule,
		},
		cfg.ReconcileConcurrency,
		staleAfter(schedule, cfg.HelmTimeout, time.Now()),
	)

	appState.SetShutdownTimeout(shutdownTimeout(cfg.HelmTimeout))

	a := &App{
		logger:     logger,
		appState:   appState,
		signals:    shutdown.New(logger, appState, cfg.TerminationFilePath),
		store:      store,
		inventory:  inventory,
		controller: controllerService,
	}

	a.components = append(a.components, httpserver.NewMetricsServer(logger, cfg.MetricsPort), controllerService)

	monitor, err := newPodMonitor(logger, cfg, store)
	if err != nil {
		return nil, err
	}

	if monitor != nil {
		appState.RegisterReporter(monitor)
		a.components = append(a.components, monitor)
	}

	a.components = append(a.components, httpserver.New(logger, appState, cfg.HTTPPort))

	pingers := []pinger.Pinger{store, controllerService}
	if monitor != nil {
		pingers = append(pingers, monitor)
	}

	for _, p := range pingers {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger %s: %w", p.Name(), err)
		}
	}

	return a, nil
}

func newStore(logger *slog.Logger, cfg *config.Config) (configStore, error) {
	if cfg.ConfigBackend == config.BackendMemory {
		logger.Warn("using in-memory configuration store, deployments are not persisted")

		return memory.New(), nil
	}

	store, err := etcd.New(logger.With("component", "etcd"), []string{cfg.ConfigEndpoint}, etcdDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("create config store: %w", err)
	}

	return store, nil
}

// newPodMonitor returns nil when no cluster credentials are available.
func newPodMonitor(logger *slog.Logger, cfg *config.Config, store configStore) (*podmonitor.Service, error) {
	restConfig, err := k8s.LoadRESTConfig(cfg.KubeMaster, cfg.KubeConfig)
	if errors.Is(err, k8s.ErrNoCredentials) {
		logger.Warn("no kubernetes credentials, pod monitor disabled", "reason", err)

		return nil, nil //nolint:nilnil // the monitor is optional
	}

	if err != nil {
		return nil, fmt.Errorf("load kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	return podmonitor.New(
		logger,
		k8s.New(logger.With("component", "k8s"), clientset),
		store,
		cfg.HelmNamespace,
		cfg.PodLogTailLines,
	), nil
}

// staleAfter is how long the controller may go without finishing a cycle
// before it reports itself unhealthy: two refresh periods plus two helm calls.
func staleAfter(schedule cronparser.Schedule, helmTimeout time.Duration, now time.Time) time.Duration {
	first := schedule.Next(now)
	period := schedule.Next(first).Sub(first)

	return 2*period + 2*helmTimeout
}

// shutdownTimeout lets an in-flight helm call finish before the controller
// stops, so a plain SIGTERM does not end in a failed shutdown.
func shutdownTimeout(helmTimeout time.Duration) time.Duration {
	return helmTimeout + shutdownMargin
}

// Run starts the application and blocks until a termination signal, context
// cancellation or a controller failure.
func (a *App) Run(originCtx context.Context) error {
	if err := a.signals.CheckTermination(originCtx); err != nil {
		return fmt.Errorf("check termination: %w", err)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	if err := a.appState.RegisterShutdowner(a.store); err != nil {
		return fmt.Errorf("register store shutdowner: %w", err)
	}

	runErr := a.start(ctx)
	if runErr == nil {
		runErr = a.wait(ctx)
	}

	cancel()

	if err := a.appState.Shutdown(ctx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown application: %w", err))
	}

	return runErr
}

func (a *App) start(ctx context.Context) error {
	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting application state: %w", err)
	}

	a.logExistingDeployments(ctx)

	readies := make([]<-chan struct{}, 0, len(a.components))

	for _, c := range a.components {
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		if err := a.appState.RegisterShutdowner(c); err != nil {
			return fmt.Errorf("register %s shutdowner: %w", c.Name(), err)
		}

		readies = append(readies, c.Ready())
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-a.controller.Err():
		return fmt.Errorf("controller: %w", err)
	case <-allChannelsClose(ctx, a.logger, readies...):
	}

	pingerReady, err := a.appState.StartPinger(ctx)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return nil
	case <-pingerReady:
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		return fmt.Errorf("set running application state: %w", err)
	}

	a.logger.InfoContext(ctx, "application started")

	return nil
}

func (a *App) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "application context done, shutting down")

		return nil
	case err := <-a.controller.Err():
		return fmt.Errorf("controller: %w", err)
	}
}

func (a *App) logExistingDeployments(ctx context.Context) {
	ids, err := a.inventory.List(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "could not list existing deployments", "reason", err)

		return
	}

	a.logger.InfoContext(ctx, fmt.Sprintf("found %d existing deployments", len(ids)), "deployments", ids)
}

// allChannelsClose returns a channel that is closed once every input channel
// is closed, or once ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.DebugContext(ctx, "stopped waiting for components", "pending", len(chans)-i)

				return
			}
		}
	}()

	return out
}
