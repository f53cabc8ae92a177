// Package memory is an in-process configuration store backend for development
// and tests.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb"
	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

var errWatcherClosed = errors.New("watcher closed")

// Store keeps all keys in memory and wakes watchers on every commit.
type Store struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers map[*watcher]struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data:     make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
}

// Name returns the name of the store component.
func (s *Store) Name() string {
	return "config-db"
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Shutdown closes all watchers.
func (s *Store) Shutdown(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for w := range s.watchers {
		w.closeLocked()
		delete(s.watchers, w)
	}

	return nil
}

// Txn runs fn under the store lock and commits its writes if it returns nil.
func (s *Store) Txn(ctx context.Context, fn func(tx domain.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory txn: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{store: s, writes: make(map[string][]byte)}

	if err := fn(tx); err != nil {
		return err
	}

	if len(tx.writes) == 0 {
		return nil
	}

	for key, value := range tx.writes {
		s.data[key] = value
		s.notifyLocked(key)
	}

	return nil
}

// Watch returns a watcher woken by every deployment record change.
func (s *Store) Watch(_ context.Context) (domain.Watcher, error) {
	w := &watcher{store: s, changed: make(chan struct{}, 1), closed: make(chan struct{})}

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	return w, nil
}

// Put writes a raw value.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	s.notifyLocked(key)
}

// Get reads a raw value.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]

	return append([]byte(nil), value...), ok
}

// Delete removes a key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	s.notifyLocked(key)
}

// CreateDeployment stores a deployment record.
func (s *Store) CreateDeployment(dpl *domain.Deployment) error {
	data, err := json.Marshal(dpl)
	if err != nil {
		return fmt.Errorf("marshal deployment: %w", err)
	}

	s.Put(configdb.DeploymentKey(dpl.ID), data)

	return nil
}

// DeleteDeployment removes a deployment record.
func (s *Store) DeleteDeployment(id string) {
	s.Delete(configdb.DeploymentKey(id))
}

// notifyLocked wakes the watchers when key is a deployment record.
func (s *Store) notifyLocked(key string) {
	if !strings.HasPrefix(key, configdb.DeploymentPrefix) {
		return
	}

	for w := range s.watchers {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}
}

type txn struct {
	store  *Store
	writes map[string][]byte
}

var _ domain.Txn = (*txn)(nil)

func (t *txn) get(key string) ([]byte, bool) {
	if value, ok := t.writes[key]; ok {
		return value, true
	}

	value, ok := t.store.data[key]

	return value, ok
}

func (t *txn) ListDeployments() ([]string, error) {
	keys := make([]string, 0, len(t.store.data))

	for key := range t.store.data {
		if strings.HasPrefix(key, configdb.DeploymentPrefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return configdb.DeploymentIDs(keys), nil
}

func (t *txn) GetDeployment(id string) (*domain.Deployment, error) {
	value, ok := t.get(configdb.DeploymentKey(id))
	if !ok {
		return nil, fmt.Errorf("get deployment %s: %w", id, domain.ErrNotFound)
	}

	return domain.ParseDeployment(value)
}

func (t *txn) GetProcessingBlockState(pbID string) (domain.ProcessingBlockState, error) {
	value, ok := t.get(configdb.ProcessingBlockStateKey(pbID))
	if !ok {
		return nil, fmt.Errorf("get processing block state %s: %w", pbID, domain.ErrNotFound)
	}

	return domain.ParseProcessingBlockState(value)
}

func (t *txn) UpdateProcessingBlockState(pbID string, state domain.ProcessingBlockState) error {
	key := configdb.ProcessingBlockStateKey(pbID)
	if _, ok := t.get(key); !ok {
		return fmt.Errorf("update processing block state %s: %w", pbID, domain.ErrNotFound)
	}

	data, err := state.Encode()
	if err != nil {
		return err
	}

	t.writes[key] = data

	return nil
}

type watcher struct {
	store     *Store
	changed   chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func (w *watcher) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.closed:
		return errWatcherClosed
	case <-w.changed:
		return nil
	case <-timer.C:
		return nil
	}
}

func (w *watcher) Close() error {
	w.store.mu.Lock()
	defer w.store.mu.Unlock()

	delete(w.store.watchers, w)
	w.closeLocked()

	return nil
}

func (w *watcher) closeLocked() {
	w.closeOnce.Do(func() { close(w.closed) })
}
