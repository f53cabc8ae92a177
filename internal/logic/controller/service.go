package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/cronparser"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/metrics"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/deployer"
)

const defaultConcurrency = 4

// refreshDisabled is a refresh deadline that is never reached.
var refreshDisabled = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Dependencies are the ports the reconciliation loop drives.
type Dependencies struct {
	Store     Store
	Inventory Inventory
	Executor  Executor
	Repos     RepoRefresher
	Schedule  Schedule
}

// Service is the reconciliation loop. It converges the set of live releases to
// the set of deployments in the configuration store.
type Service struct {
	logger      *slog.Logger
	deps        Dependencies
	concurrency int
	staleAfter  time.Duration
	startedAt   time.Time
	nextRefresh time.Time

	ready      chan struct{}
	doneCh     chan struct{}
	errCh      chan error
	inShutdown atomic.Bool

	mu                   sync.RWMutex
	lastReconcileEndTime time.Time

	conflictMu sync.Mutex
	conflicted map[string]struct{}
}

// New creates a new controller service. The chart repository refresh cadence
// is anchored to the time New is called.
func New(
	logger *slog.Logger,
	deps Dependencies,
	concurrency int,
	staleAfter time.Duration,
) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Service{
		logger:      logger,
		deps:        deps,
		concurrency: concurrency,
		staleAfter:  staleAfter,
		startedAt:   time.Now(),
		ready:       make(chan struct{}),
		doneCh:      make(chan struct{}),
		errCh:       make(chan error, 1),
		conflicted:  make(map[string]struct{}),
	}
}

// Name returns the name of the controller component.
func (s *Service) Name() string {
	return "helmdeploy-controller"
}

// Start runs the loop in the background. A fatal loop error is delivered on Err.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "controller service is shutting down, skipping start")

		return nil
	}

	go func() {
		if err := s.RunCommand(ctx); err != nil {
			s.logger.ErrorContext(ctx, "controller loop failed", "reason", err)
			s.errCh <- err
		}
	}()

	return nil
}

// Ready is closed once the loop has opened its store watch.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Err delivers the error that ended the loop.
func (s *Service) Err() <-chan error {
	return s.errCh
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		lastReconcileAge := s.getLastReconcileAge()
		if s.staleAfter > 0 && lastReconcileAge > s.staleAfter {
			return fmt.Errorf("%w: %s", ErrStale, lastReconcileAge.Round(time.Second).String())
		}

		return nil
	default:
		return ErrNotReady
	}
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "controller service is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down controller service")

	// RunCommand exits once its context is cancelled; an in-flight helm call is
	// allowed to finish within the shutdown deadline.
	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before controller loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "controller loop exited")
	}

	return nil
}

// RunCommand runs reconciliation cycles until ctx is cancelled. Between cycles
// it sleeps until the store changes or the next chart repository refresh is
// due. It returns an error wrapping ErrStoreAccess if the store fails.
func (s *Service) RunCommand(ctx context.Context) error {
	defer close(s.doneCh)

	logger := s.logger.With("controller", "RunCommand")

	watcher, err := s.deps.Store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("%w: watch: %w", ErrStoreAccess, err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			logger.WarnContext(ctx, "could not close store watcher", "reason", err)
		}
	}()

	s.setLastReconcileEndTime()
	close(s.ready)

	for {
		if ctx.Err() != nil {
			logger.InfoContext(ctx, "terminating main controller loop")

			return nil
		}

		requeue, err := s.reconcile(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.InfoContext(ctx, "terminating main controller loop")

				return nil
			}

			return err
		}

		s.setLastReconcileEndTime()

		if requeue {
			logger.InfoContext(ctx, "orphaned release purged, re-evaluating immediately")

			continue
		}

		err = watcher.Wait(ctx, time.Until(s.nextRefresh))
		if err != nil {
			if ctx.Err() != nil {
				logger.InfoContext(ctx, "terminating main controller loop")

				return nil
			}

			return fmt.Errorf("%w: wait for changes: %w", ErrStoreAccess, err)
		}
	}
}

// ReconcileCommand runs one reconciliation cycle.
func (s *Service) ReconcileCommand(ctx context.Context) error {
	_, err := s.reconcile(ctx)

	return err
}

// reconcile runs one cycle and reports whether the next one should start
// without waiting.
func (s *Service) reconcile(ctx context.Context) (bool, error) {
	start := time.Now()
	logger := s.logger.With("controller", "reconcile", "cycle", uuid.NewString())

	s.refreshIfDue(ctx, logger)

	actual, err := s.deps.Inventory.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "could not list releases, skipping cycle", "reason", err)
		metrics.RecordReconcileCycle(metrics.ResultSkipped, time.Since(start).Seconds())

		return false, nil
	}

	var desired []string

	err = s.deps.Store.Txn(ctx, func(tx domain.Txn) error {
		ids, err := tx.ListDeployments()
		if err != nil {
			return err
		}

		desired = ids

		return nil
	})
	if err != nil {
		metrics.RecordReconcileCycle(metrics.ResultFailure, time.Since(start).Seconds())

		return false, fmt.Errorf("%w: list deployments: %w", ErrStoreAccess, err)
	}

	metrics.SetManagedReleases(len(actual))
	s.pruneConflicted(desired)

	toDelete, toCreate := diff(desired, actual)

	logger.DebugContext(ctx, "reconciling",
		"desired", len(desired),
		"actual", len(actual),
		"delete", len(toDelete),
		"create", len(toCreate),
	)

	s.deleteAll(ctx, logger, toDelete)

	requeue, err := s.createAll(ctx, logger, toCreate)
	if err != nil {
		metrics.RecordReconcileCycle(metrics.ResultFailure, time.Since(start).Seconds())

		return false, err
	}

	metrics.RecordReconcileCycle(metrics.ResultSuccess, time.Since(start).Seconds())

	return requeue, nil
}

func (s *Service) refreshIfDue(ctx context.Context, logger *slog.Logger) {
	if time.Now().Before(s.nextRefresh) {
		return
	}

	logger.DebugContext(ctx, "refreshing chart repositories")
	s.deps.Repos.Refresh(ctx)

	next, err := cronparser.NextAfter(s.deps.Schedule, s.startedAt, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "chart repository refresh schedule exhausted, refreshes disabled", "reason", err)

		next = refreshDisabled
	}

	s.nextRefresh = next
}

func (s *Service) deleteAll(ctx context.Context, logger *slog.Logger, ids []string) {
	var g errgroup.Group

	g.SetLimit(s.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			if err := s.deps.Executor.Delete(ctx, id); err != nil {
				logger.ErrorContext(ctx, "could not delete deployment", "deployment", id, "reason", err)
			}

			return nil
		})
	}

	_ = g.Wait()
}

func (s *Service) createAll(ctx context.Context, logger *slog.Logger, ids []string) (bool, error) {
	var requeue atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range ids {
		g.Go(func() error {
			again, err := s.create(gctx, logger.With("deployment", id), id)
			if again {
				requeue.Store(true)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	return requeue.Load(), nil
}

func (s *Service) create(ctx context.Context, logger *slog.Logger, id string) (bool, error) {
	var dpl *domain.Deployment

	err := s.deps.Store.Txn(ctx, func(tx domain.Txn) error {
		d, err := tx.GetDeployment(id)
		if err != nil {
			return err
		}

		dpl = d

		return nil
	})

	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.DebugContext(ctx, "deployment removed before create, skipping")

		return false, nil
	case errors.Is(err, domain.ErrValidation):
		logger.WarnContext(ctx, "invalid deployment record, skipping", "reason", err)
		metrics.RecordReleaseOperation(metrics.OperationCreate, metrics.ResultSkipped)

		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: get deployment %s: %w", ErrStoreAccess, id, err)
	}

	if !dpl.IsHelm() {
		logger.DebugContext(ctx, "deployment is not a helm chart, skipping", "kind", dpl.Kind)

		return false, nil
	}

	outcome, err := s.deps.Executor.Create(ctx, id, dpl)
	if err != nil {
		logger.ErrorContext(ctx, "could not create deployment", "reason", err)

		return false, nil
	}

	switch outcome {
	case deployer.OutcomeCreated:
		s.clearConflicted(id)
	case deployer.OutcomePurged:
		return s.markConflicted(id), nil
	case deployer.OutcomeFailed:
	}

	return false, nil
}

// markConflicted records a purge for id and reports whether it is the first
// one, so each id triggers at most one immediate re-evaluation.
func (s *Service) markConflicted(id string) bool {
	s.conflictMu.Lock()
	defer s.conflictMu.Unlock()

	if _, ok := s.conflicted[id]; ok {
		return false
	}

	s.conflicted[id] = struct{}{}

	return true
}

func (s *Service) clearConflicted(id string) {
	s.conflictMu.Lock()
	defer s.conflictMu.Unlock()

	delete(s.conflicted, id)
}

func (s *Service) pruneConflicted(desired []string) {
	keep := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		keep[id] = struct{}{}
	}

	s.conflictMu.Lock()
	defer s.conflictMu.Unlock()

	for id := range s.conflicted {
		if _, ok := keep[id]; !ok {
			delete(s.conflicted, id)
		}
	}
}

// diff returns the sorted ids that exist only in actual and only in desired.
func diff(desired, actual []string) ([]string, []string) {
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	actualSet := make(map[string]struct{}, len(actual))
	for _, id := range actual {
		actualSet[id] = struct{}{}
	}

	toDelete := make([]string, 0)

	for id := range actualSet {
		if _, ok := desiredSet[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}

	toCreate := make([]string, 0)

	for id := range desiredSet {
		if _, ok := actualSet[id]; !ok {
			toCreate = append(toCreate, id)
		}
	}

	sort.Strings(toDelete)
	sort.Strings(toCreate)

	return toDelete, toCreate
}

func (s *Service) getLastReconcileAge() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.lastReconcileEndTime)
}

func (s *Service) setLastReconcileEndTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastReconcileEndTime = time.Now()
}
