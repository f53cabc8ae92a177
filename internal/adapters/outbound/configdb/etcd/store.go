// Package etcd is the etcd v3 backend of the configuration store.
package etcd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb"
	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

const (
	defaultTxnAttempts = 8
)

// Store is a configuration store backed by an etcd cluster.
type Store struct {
	logger      *slog.Logger
	client      *clientv3.Client
	txnAttempts int
	inShutdown  atomic.Bool
}

// New connects to the etcd endpoints.
func New(logger *slog.Logger, endpoints []string, dialTimeout time.Duration) (*Store, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create etcd client: %w", err)
	}

	return &Store{
		logger:      logger.With("component", "configdb", "backend", "etcd"),
		client:      client,
		txnAttempts: defaultTxnAttempts,
	}, nil
}

// Name returns the name of the store component.
func (s *Store) Name() string {
	return "config-db"
}

// Ping checks that the cluster answers a read.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Get(ctx, configdb.DeploymentPrefix, clientv3.WithPrefix(), clientv3.WithCountOnly()); err != nil {
		return fmt.Errorf("ping etcd: %w", err)
	}

	return nil
}

// Shutdown closes the client, which also ends all watch streams.
func (s *Store) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.InfoContext(ctx, "closing etcd client")

	if err := s.client.Close(); err != nil {
		return fmt.Errorf("close etcd client: %w", err)
	}

	return nil
}

// Txn runs fn as an optimistic transaction. All reads of one attempt are
// served at the revision of its first read. Writes are committed only if no
// key that was read changed since, otherwise fn runs again.
func (s *Store) Txn(ctx context.Context, fn func(tx domain.Txn) error) error {
	for attempt := 1; attempt <= s.txnAttempts; attempt++ {
		tx := newTxn(ctx, s.client)

		if err := fn(tx); err != nil {
			// The pinned revision was compacted away under the reads.
			if errors.Is(err, rpctypes.ErrCompacted) {
				s.logger.DebugContext(ctx, "txn revision compacted, retrying", "attempt", attempt)

				continue
			}

			return err
		}

		if len(tx.writes) == 0 {
			return nil
		}

		committed, err := tx.commit()
		if err != nil {
			return fmt.Errorf("commit txn: %w", err)
		}

		if committed {
			return nil
		}

		s.logger.DebugContext(ctx, "txn conflict, retrying", "attempt", attempt)
	}

	return fmt.Errorf("%w: gave up after %d attempts", ErrTxnConflict, s.txnAttempts)
}

// Watch opens a watch on the deployment records. Processing block state
// writes do not wake it.
func (s *Store) Watch(ctx context.Context) (domain.Watcher, error) {
	if s.inShutdown.Load() {
		return nil, fmt.Errorf("watch: %w", ErrWatchClosed)
	}

	watchCtx, cancel := context.WithCancel(ctx)

	return &watcher{
		ch:     s.client.Watch(clientv3.WithRequireLeader(watchCtx), configdb.DeploymentPrefix, clientv3.WithPrefix()),
		cancel: cancel,
	}, nil
}

type txn struct {
	ctx      context.Context
	kv       clientv3.KV
	revision int64
	reads    map[string]int64
	writes   map[string][]byte
}

var _ domain.Txn = (*txn)(nil)

func newTxn(ctx context.Context, kv clientv3.KV) *txn {
	return &txn{
		ctx:    ctx,
		kv:     kv,
		reads:  make(map[string]int64),
		writes: make(map[string][]byte),
	}
}

func (t *txn) rangeOpts(opts ...clientv3.OpOption) []clientv3.OpOption {
	if t.revision > 0 {
		opts = append(opts, clientv3.WithRev(t.revision))
	}

	return opts
}

func (t *txn) pin(resp *clientv3.GetResponse) {
	if t.revision == 0 {
		t.revision = resp.Header.Revision
	}
}

// get returns the value of key and whether it exists. The key's mod revision
// is recorded for the commit guard.
func (t *txn) get(key string) ([]byte, bool, error) {
	if value, ok := t.writes[key]; ok {
		return value, true, nil
	}

	resp, err := t.kv.Get(t.ctx, key, t.rangeOpts()...)
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	t.pin(resp)

	if len(resp.Kvs) == 0 {
		t.reads[key] = 0

		return nil, false, nil
	}

	t.reads[key] = resp.Kvs[0].ModRevision

	return resp.Kvs[0].Value, true, nil
}

func (t *txn) commit() (bool, error) {
	cmps := make([]clientv3.Cmp, 0, len(t.reads))
	for key, modRevision := range t.reads {
		cmps = append(cmps, clientv3.Compare(clientv3.ModRevision(key), "=", modRevision))
	}

	ops := make([]clientv3.Op, 0, len(t.writes))
	for key, value := range t.writes {
		ops = append(ops, clientv3.OpPut(key, string(value)))
	}

	resp, err := t.kv.Txn(t.ctx).If(cmps...).Then(ops...).Commit()
	if err != nil {
		return false, err
	}

	return resp.Succeeded, nil
}

func (t *txn) ListDeployments() ([]string, error) {
	resp, err := t.kv.Get(t.ctx, configdb.DeploymentPrefix, t.rangeOpts(clientv3.WithPrefix(), clientv3.WithKeysOnly())...)
	if err != nil {
		return nil, fmt.Errorf("list deployments: %w", err)
	}

	t.pin(resp)

	keys := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		keys = append(keys, string(kv.Key))
	}

	return configdb.DeploymentIDs(keys), nil
}

func (t *txn) GetDeployment(id string) (*domain.Deployment, error) {
	value, ok, err := t.get(configdb.DeploymentKey(id))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("get deployment %s: %w", id, domain.ErrNotFound)
	}

	return domain.ParseDeployment(value)
}

func (t *txn) GetProcessingBlockState(pbID string) (domain.ProcessingBlockState, error) {
	value, ok, err := t.get(configdb.ProcessingBlockStateKey(pbID))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("get processing block state %s: %w", pbID, domain.ErrNotFound)
	}

	return domain.ParseProcessingBlockState(value)
}

func (t *txn) UpdateProcessingBlockState(pbID string, state domain.ProcessingBlockState) error {
	key := configdb.ProcessingBlockStateKey(pbID)

	_, ok, err := t.get(key)
	if err != nil {
		return err
	}

	if !ok {
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
	ch     clientv3.WatchChan
	cancel context.CancelFunc
}

// Wait blocks until a change arrives, the timeout elapses or ctx is done.
// Responses already queued are drained so one wake-up covers a burst of writes.
func (w *watcher) Wait(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	case resp, ok := <-w.ch:
		if err := checkResponse(resp, ok); err != nil {
			return err
		}
	}

	for {
		select {
		case resp, ok := <-w.ch:
			if err := checkResponse(resp, ok); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (w *watcher) Close() error {
	w.cancel()

	return nil
}

func checkResponse(resp clientv3.WatchResponse, ok bool) error {
	if !ok {
		return ErrWatchClosed
	}

	if err := resp.Err(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if resp.Canceled {
		return ErrWatchClosed
	}

	return nil
}
