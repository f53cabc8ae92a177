package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb/memory"
	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

func helmDeployment(id, chart string) *domain.Deployment {
	return &domain.Deployment{ID: id, Kind: domain.KindHelm, Args: domain.DeploymentArgs{Chart: chart}}
}

func TestStore_Deployments(t *testing.T) {
	t.Parallel()

	s := memory.New()
	require.NoError(t, s.CreateDeployment(helmDeployment("b", "workflow")))
	require.NoError(t, s.CreateDeployment(helmDeployment("a", "dask/dask")))
	s.Put(configdb.DeploymentKey("broken"), []byte(`{"id":"broken","kind":"helm","args":{}}`))

	err := s.Txn(t.Context(), func(tx domain.Txn) error {
		ids, err := tx.ListDeployments()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "broken"}, ids)

		dpl, err := tx.GetDeployment("a")
		require.NoError(t, err)
		require.Equal(t, "dask/dask", dpl.Args.Chart)

		_, err = tx.GetDeployment("broken")
		require.ErrorIs(t, err, domain.ErrValidation)

		_, err = tx.GetDeployment("missing")
		require.ErrorIs(t, err, domain.ErrNotFound)

		return nil
	})
	require.NoError(t, err)

	s.DeleteDeployment("b")

	err = s.Txn(t.Context(), func(tx domain.Txn) error {
		ids, err := tx.ListDeployments()
		require.Equal(t, []string{"a", "broken"}, ids)

		return err
	})
	require.NoError(t, err)
}

func TestStore_ProcessingBlockState(t *testing.T) {
	t.Parallel()

	s := memory.New()
	key := configdb.ProcessingBlockStateKey("pb-1")
	s.Put(key, []byte(`{"status":"RUNNING"}`))

	t.Run("update commits", func(t *testing.T) {
		err := s.Txn(t.Context(), func(tx domain.Txn) error {
			state, err := tx.GetProcessingBlockState("pb-1")
			if err != nil {
				return err
			}

			if err := state.MergePodStatus("Running", []string{"x"}); err != nil {
				return err
			}

			return tx.UpdateProcessingBlockState("pb-1", state)
		})
		require.NoError(t, err)

		got, ok := s.Get(key)
		require.True(t, ok)
		require.JSONEq(t, `{"status":"RUNNING","k8s_status":"Running","k8s_lastlog":["x"]}`, string(got))
	})

	t.Run("failed txn discards writes", func(t *testing.T) {
		wantErr := errors.New("abort")

		err := s.Txn(t.Context(), func(tx domain.Txn) error {
			state, err := tx.GetProcessingBlockState("pb-1")
			if err != nil {
				return err
			}

			if err := state.MergePodStatus("Failed", nil); err != nil {
				return err
			}

			if err := tx.UpdateProcessingBlockState("pb-1", state); err != nil {
				return err
			}

			return wantErr
		})
		require.ErrorIs(t, err, wantErr)

		got, _ := s.Get(key)
		require.Contains(t, string(got), `"Running"`)
	})

	t.Run("absent state", func(t *testing.T) {
		err := s.Txn(t.Context(), func(tx domain.Txn) error {
			_, err := tx.GetProcessingBlockState("pb-2")

			return err
		})
		require.ErrorIs(t, err, domain.ErrNotFound)

		err = s.Txn(t.Context(), func(tx domain.Txn) error {
			return tx.UpdateProcessingBlockState("pb-2", domain.ProcessingBlockState{})
		})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	t.Run("change wakes the watcher", func(t *testing.T) {
		t.Parallel()

		s := memory.New()

		w, err := s.Watch(t.Context())
		require.NoError(t, err)

		defer w.Close()

		go func() {
			time.Sleep(20 * time.Millisecond)

			_ = s.CreateDeployment(helmDeployment("a", "workflow"))
		}()

		start := time.Now()
		require.NoError(t, w.Wait(t.Context(), 5*time.Second))
		require.Less(t, time.Since(start), 4*time.Second)
	})

	t.Run("processing block state write does not wake the watcher", func(t *testing.T) {
		t.Parallel()

		s := memory.New()
		s.Put(configdb.ProcessingBlockStateKey("pb-1"), []byte(`{"status":"RUNNING"}`))

		w, err := s.Watch(t.Context())
		require.NoError(t, err)

		defer w.Close()

		err = s.Txn(t.Context(), func(tx domain.Txn) error {
			state, err := tx.GetProcessingBlockState("pb-1")
			if err != nil {
				return err
			}

			if err := state.MergePodStatus("Running", []string{"ready"}); err != nil {
				return err
			}

			return tx.UpdateProcessingBlockState("pb-1", state)
		})
		require.NoError(t, err)

		start := time.Now()
		require.NoError(t, w.Wait(t.Context(), 200*time.Millisecond))
		require.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	})

	t.Run("timeout wakes the watcher", func(t *testing.T) {
		t.Parallel()

		s := memory.New()

		w, err := s.Watch(t.Context())
		require.NoError(t, err)

		defer w.Close()

		require.NoError(t, w.Wait(t.Context(), 20*time.Millisecond))
		require.NoError(t, w.Wait(t.Context(), 0))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		s := memory.New()

		w, err := s.Watch(t.Context())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		require.ErrorIs(t, w.Wait(ctx, time.Minute), context.Canceled)
	})

	t.Run("closed watcher", func(t *testing.T) {
		t.Parallel()

		s := memory.New()

		w, err := s.Watch(t.Context())
		require.NoError(t, err)
		require.NoError(t, s.Shutdown(t.Context()))
		require.Error(t, w.Wait(t.Context(), time.Minute))
		require.NoError(t, w.Close())
	})
}
