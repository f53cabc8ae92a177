package podmonitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/metrics"
)

// Service mirrors the phase and latest log lines of workflow pods into the
// matching processing block state records.
type Service struct {
	logger    *slog.Logger
	cluster   Cluster
	store     Store
	namespace string
	tailLines int64

	mu         sync.RWMutex
	state      State
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
}

// New creates a new pod status monitor.
func New(
	logger *slog.Logger,
	cluster Cluster,
	store Store,
	namespace string,
	tailLines int64,
) *Service {
	return &Service{
		logger:    logger.With("component", "podmonitor"),
		cluster:   cluster,
		store:     store,
		namespace: namespace,
		tailLines: tailLines,
		state:     StateNotRunning,
		ready:     make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Name returns the name of the monitor component.
func (s *Service) Name() string {
	return "pod-monitor"
}

// PingerCritical reports that a stopped monitor does not make the process unhealthy.
func (s *Service) PingerCritical() bool {
	return false
}

// PingerReadyCritical reports that a stopped monitor does not make the process unready.
func (s *Service) PingerReadyCritical() bool {
	return false
}

// State returns the current monitor state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Status returns the monitor state for the status report.
func (s *Service) Status() string {
	return string(s.State())
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// Start subscribes to pod events and consumes them in the background. A
// failed subscription leaves the monitor stopped without failing the caller.
func (s *Service) Start(ctx context.Context) error {
	defer close(s.ready)

	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pod monitor is shutting down, skipping start")
		close(s.doneCh)

		return nil
	}

	events, err := s.cluster.WatchPodsQuery(ctx, s.namespace)
	if err != nil {
		s.logger.ErrorContext(ctx, "could not watch pods, pod monitor stopped", "reason", err)
		s.setState(StateStopped)
		close(s.doneCh)

		return nil
	}

	s.setState(StateRunning)
	s.logger.InfoContext(ctx, "pod monitor started", "namespace", s.namespace)

	go s.run(ctx, events)

	return nil
}

// Ready is closed once Start has returned.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch s.State() {
	case StateRunning:
		return nil
	case StateStopped:
		return ErrStopped
	default:
		return ErrNotRunning
	}
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	if s.State() == StateNotRunning {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pod monitor exited: %w", ctx.Err())
	case <-s.doneCh:
	}

	return nil
}

func (s *Service) run(ctx context.Context, events <-chan PodEvent) {
	defer close(s.doneCh)

	for {
		if ctx.Err() != nil {
			s.setState(StateStopped)
			s.logger.InfoContext(ctx, "pod monitor terminated")

			return
		}

		event, ok := <-events
		if !ok {
			s.setState(StateStopped)

			if ctx.Err() == nil {
				s.logger.ErrorContext(ctx, "pod event stream ended, pod monitor stopped")
			}

			return
		}

		s.handleEvent(ctx, event)
	}
}

// handleEvent mirrors one pod event. Errors are logged and never stop the monitor.
func (s *Service) handleEvent(ctx context.Context, event PodEvent) {
	logger := s.logger.With("pod", event.Name, "phase", event.Phase)

	logger.InfoContext(ctx, "pod event")

	pbID, ok := ProcessingBlockID(event.Name)
	if !ok {
		logger.DebugContext(ctx, "pod is not a workflow pod, dropping event")
		metrics.RecordPodStatusUpdate(metrics.ResultDropped)

		return
	}

	logger = logger.With("pb", pbID)

	err := s.store.Txn(ctx, func(tx domain.Txn) error {
		_, err := tx.GetProcessingBlockState(pbID)

		return err
	})
	if err != nil {
		s.recordFailure(ctx, logger, err)

		return
	}

	lastLog := s.lastLog(ctx, logger, event.Name)

	err = s.store.Txn(ctx, func(tx domain.Txn) error {
		state, err := tx.GetProcessingBlockState(pbID)
		if err != nil {
			return err
		}

		if err := state.MergePodStatus(event.Phase, lastLog); err != nil {
			return err
		}

		return tx.UpdateProcessingBlockState(pbID, state)
	})
	if err != nil {
		s.recordFailure(ctx, logger, err)

		return
	}

	logger.DebugContext(ctx, "processing block state updated")
	metrics.RecordPodStatusUpdate(metrics.ResultSuccess)
}

func (s *Service) lastLog(ctx context.Context, logger *slog.Logger, podName string) []string {
	log, err := s.cluster.GetPodLogQuery(ctx, s.namespace, podName, s.tailLines)
	if err != nil {
		logger.WarnContext(ctx, "could not fetch pod log", "reason", err)

		return []string{fmt.Sprintf("<log unavailable: %v>", err)}
	}

	return lastLines(log)
}

func (s *Service) recordFailure(ctx context.Context, logger *slog.Logger, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		logger.DebugContext(ctx, "processing block state not found, dropping event")
		metrics.RecordPodStatusUpdate(metrics.ResultDropped)

		return
	}

	logger.ErrorContext(ctx, "could not update processing block state", "reason", err)
	metrics.RecordPodStatusUpdate(metrics.ResultFailure)
}
