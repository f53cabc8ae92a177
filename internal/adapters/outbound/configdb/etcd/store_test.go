package etcd_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb/etcd"
	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

// testEndpointsEnv points the integration tests at a disposable etcd cluster.
const testEndpointsEnv = "SDP_TEST_ETCD_ENDPOINTS"

func newTestStore(t *testing.T) (*etcd.Store, *clientv3.Client) {
	t.Helper()

	endpoints := os.Getenv(testEndpointsEnv)
	if endpoints == "" {
		t.Skipf("%s is not set", testEndpointsEnv)
	}

	logger := slog.New(slog.DiscardHandler)

	store, err := etcd.New(logger, strings.Split(endpoints, ","), 5*time.Second)
	require.NoError(t, err)

	client, err := clientv3.New(clientv3.Config{Endpoints: strings.Split(endpoints, ","), DialTimeout: 5 * time.Second})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, _ = client.Delete(ctx, "/", clientv3.WithPrefix())
		_ = client.Close()
		_ = store.Shutdown(ctx)
	})

	return store, client
}

func TestStore_Integration(t *testing.T) {
	store, client := newTestStore(t)
	ctx := t.Context()

	require.NoError(t, store.Ping(ctx))

	id := "it-" + uuid.NewString()[:8]
	pbID := "pb-" + uuid.NewString()[:8]

	_, err := client.Put(ctx, configdb.DeploymentKey(id), `{"id":"`+id+`","kind":"helm","args":{"chart":"workflow"}}`)
	require.NoError(t, err)
	_, err = client.Put(ctx, configdb.ProcessingBlockStateKey(pbID), `{"status":"RUNNING"}`)
	require.NoError(t, err)

	err = store.Txn(ctx, func(tx domain.Txn) error {
		ids, err := tx.ListDeployments()
		require.NoError(t, err)
		require.Contains(t, ids, id)

		dpl, err := tx.GetDeployment(id)
		require.NoError(t, err)
		require.Equal(t, "workflow", dpl.Args.Chart)

		_, err = tx.GetDeployment("missing")
		require.ErrorIs(t, err, domain.ErrNotFound)

		return nil
	})
	require.NoError(t, err)

	watcher, err := store.Watch(ctx)
	require.NoError(t, err)

	defer watcher.Close()

	err = store.Txn(ctx, func(tx domain.Txn) error {
		state, err := tx.GetProcessingBlockState(pbID)
		if err != nil {
			return err
		}

		if err := state.MergePodStatus("Running", []string{"ready"}); err != nil {
			return err
		}

		return tx.UpdateProcessingBlockState(pbID, state)
	})
	require.NoError(t, err)

	resp, err := client.Get(ctx, configdb.ProcessingBlockStateKey(pbID))
	require.NoError(t, err)
	require.Len(t, resp.Kvs, 1)
	require.JSONEq(t, `{"status":"RUNNING","k8s_status":"Running","k8s_lastlog":["ready"]}`, string(resp.Kvs[0].Value))

	// A state write does not wake the watcher.
	start := time.Now()
	require.NoError(t, watcher.Wait(ctx, 500*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 450*time.Millisecond)

	_, err = client.Delete(ctx, configdb.DeploymentKey(id))
	require.NoError(t, err)

	start = time.Now()
	require.NoError(t, watcher.Wait(ctx, 10*time.Second))
	require.Less(t, time.Since(start), 9*time.Second)
}

func TestStore_TxnRetriesOnConflict(t *testing.T) {
	store, client := newTestStore(t)
	ctx := t.Context()

	pbID := "pb-" + uuid.NewString()[:8]
	key := configdb.ProcessingBlockStateKey(pbID)

	_, err := client.Put(ctx, key, `{"status":"RUNNING"}`)
	require.NoError(t, err)

	attempts := 0

	err = store.Txn(ctx, func(tx domain.Txn) error {
		attempts++

		state, err := tx.GetProcessingBlockState(pbID)
		if err != nil {
			return err
		}

		if attempts == 1 {
			_, err := client.Put(ctx, key, `{"status":"FINISHED"}`)
			require.NoError(t, err)
		}

		if err := state.MergePodStatus("Succeeded", nil); err != nil {
			return err
		}

		return tx.UpdateProcessingBlockState(pbID, state)
	})
	require.NoError(t, err)
	require.Equal(t, 2, attempts)

	resp, err := client.Get(ctx, key)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"FINISHED","k8s_status":"Succeeded","k8s_lastlog":[]}`, string(resp.Kvs[0].Value))
}
