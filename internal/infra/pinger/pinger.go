package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/metrics"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
)

const defaultPingTimeout = 1 * time.Second

type probe struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration
	stats          *stats
}

// Service pings the registered components at a fixed interval and keeps their
// statistics for the health endpoints and metrics.
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	mu         sync.RWMutex
	probes     map[string]*probe
	ready      chan struct{}
	inShutdown atomic.Bool
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
) *Service {
	return &Service{
		logger:   logger,
		interval: interval,
		probes:   make(map[string]*probe),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds a pinger. Names must be unique.
func (s *Service) Register(pinger Pinger) error {
	if pinger == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := pinger.Name()

	p := &probe{
		pinger:         pinger,
		readyCritical:  true,
		healthCritical: true,
		timeout:        defaultPingTimeout,
		stats:          newStats(),
	}

	if rc, ok := pinger.(readyCriticalPinger); ok {
		p.readyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := pinger.(healthCriticalPinger); ok {
		p.healthCritical = hc.PingerCritical()
	}

	if tp, ok := pinger.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		p.timeout = tp.PingerTimeout()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.probes[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.probes[name] = p

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", p.readyCritical,
		"healthCritical", p.healthCritical,
		"timeout", p.timeout,
	)

	return nil
}

// Start starts the pinger service in a goroutine
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready is closed after the first ping round.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown waits for the ping loop and in-flight pings to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down pinger service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "pinger loop exited")
	}

	s.wg.Wait()

	return nil
}

// GetStats returns statistics for a specific pinger
func (s *Service) GetStats(name string) (*Statistics, error) {
	s.mu.RLock()
	p, ok := s.probes[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("get stats: %w: %s", ErrPingerNotFound, name)
	}

	return p.stats.snapshot(p), nil
}

// GetAllStats returns a snapshot of the statistics of every pinger.
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.probes))
	for name, p := range s.probes {
		result[name] = p.stats.snapshot(p)
	}

	return result
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("component", "pinger-run")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.pingAll(ctx, logger)
	close(s.ready)

	for {
		if s.inShutdown.Load() {
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}

		select {
		case <-ticker.C:
			s.pingAll(ctx, logger)
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}

// pingAll pings every registered component in parallel and waits for the round.
func (s *Service) pingAll(ctx context.Context, logger *slog.Logger) {
	s.mu.RLock()
	probes := maps.Clone(s.probes)
	s.mu.RUnlock()

	var round sync.WaitGroup

	for name, p := range probes {
		if ctx.Err() != nil {
			break
		}

		s.wg.Add(1)
		round.Go(func() {
			defer s.wg.Done()

			s.ping(ctx, logger, name, p)
		})
	}

	round.Wait()
}

func (s *Service) ping(ctx context.Context, logger *slog.Logger, name string, p *probe) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.pinger.Ping(pingCtx)
	latency := time.Since(start)

	p.stats.record(time.Now(), latency, err)
	metrics.RecordComponentPing(name, err == nil, latency.Seconds())

	if err != nil {
		logger.DebugContext(ctx, "pinger error", "name", name, "latency", latency, "reason", err)

		return
	}

	logger.DebugContext(ctx, "pinger success", "name", name, "latency", latency)
}
