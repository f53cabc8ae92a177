package podmonitor_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb"
	"github.com/skillcoder/helmdeploy-controller/internal/adapters/outbound/configdb/memory"
	"github.com/skillcoder/helmdeploy-controller/internal/domain"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor/mocks"
)

const (
	testNamespace = "sdp"
	testTailLines = int64(100)
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func waitState(t *testing.T, svc *podmonitor.Service, want podmonitor.State) {
	t.Helper()

	require.Eventually(t, func() bool {
		return svc.State() == want
	}, 5*time.Second, 10*time.Millisecond)
}

func TestService_MirrorsPodStatus(t *testing.T) {
	t.Parallel()

	store := memory.New()
	stateKey := configdb.ProcessingBlockStateKey("pb-1")
	store.Put(stateKey, []byte(`{"status":"RUNNING","resources":{"cpu":2.50}}`))

	events := make(chan podmonitor.PodEvent)
	cluster := mocks.NewMockCluster(t)

	cluster.EXPECT().WatchPodsQuery(mock.Anything, testNamespace).Return((<-chan podmonitor.PodEvent)(events), nil).Once()
	cluster.EXPECT().GetPodLogQuery(mock.Anything, testNamespace, "proc-pb-1-workflow-abc", testTailLines).
		Return("boot\nstep 1\nstep 2\nstep 3\n", nil).Once()
	cluster.EXPECT().GetPodLogQuery(mock.Anything, testNamespace, "proc-pb-1-workflow-abc", testTailLines).
		Return("", errors.New("container is waiting to start")).Once()

	svc := podmonitor.New(newLogger(), cluster, store, testNamespace, testTailLines)
	require.Equal(t, podmonitor.StateNotRunning, svc.State())
	require.ErrorIs(t, svc.Ping(t.Context()), podmonitor.ErrNotRunning)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	require.NoError(t, svc.Start(ctx))
	<-svc.Ready()
	require.Equal(t, podmonitor.StateRunning, svc.State())
	require.NoError(t, svc.Ping(t.Context()))
	require.False(t, svc.PingerCritical())

	// Untracked and unrelated pods are dropped without touching the cluster.
	events <- podmonitor.PodEvent{Name: "dask-scheduler-1", Phase: "Running"}
	events <- podmonitor.PodEvent{Name: "proc-pb-2-workflow-xyz", Phase: "Running"}

	events <- podmonitor.PodEvent{Name: "proc-pb-1-workflow-abc", Phase: "Running"}

	waitPhase(t, store, stateKey, "Running")

	got, _ := store.Get(stateKey)
	require.JSONEq(t,
		`{"status":"RUNNING","resources":{"cpu":2.50},"k8s_status":"Running","k8s_lastlog":["step 1","step 2","step 3"]}`,
		string(got),
	)
	require.Contains(t, string(got), `"resources":{"cpu":2.50}`)

	events <- podmonitor.PodEvent{Name: "proc-pb-1-workflow-abc", Phase: "Pending"}

	waitPhase(t, store, stateKey, "Pending")

	got, _ = store.Get(stateKey)
	require.JSONEq(t,
		`{"status":"RUNNING","resources":{"cpu":2.50},"k8s_status":"Pending","k8s_lastlog":["<log unavailable: container is waiting to start>"]}`,
		string(got),
	)

	close(events)
	waitState(t, svc, podmonitor.StateStopped)
	require.ErrorIs(t, svc.Ping(t.Context()), podmonitor.ErrStopped)

	shutdownCtx, shutdownCancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer shutdownCancel()

	require.NoError(t, svc.Shutdown(shutdownCtx))
}

func TestService_WatchFailureStopsMonitor(t *testing.T) {
	t.Parallel()

	cluster := mocks.NewMockCluster(t)
	cluster.EXPECT().WatchPodsQuery(mock.Anything, testNamespace).Return(nil, errors.New("forbidden")).Once()

	svc := podmonitor.New(newLogger(), cluster, memory.New(), testNamespace, testTailLines)

	require.NoError(t, svc.Start(t.Context()))
	require.Equal(t, podmonitor.StateStopped, svc.State())
	require.NoError(t, svc.Shutdown(t.Context()))
}

func TestService_StopsOnCancel(t *testing.T) {
	t.Parallel()

	events := make(chan podmonitor.PodEvent)
	cluster := mocks.NewMockCluster(t)

	ctx, cancel := context.WithCancel(t.Context())

	cluster.EXPECT().WatchPodsQuery(mock.Anything, testNamespace).
		RunAndReturn(func(ctx context.Context, _ string) (<-chan podmonitor.PodEvent, error) {
			go func() {
				<-ctx.Done()
				close(events)
			}()

			return events, nil
		}).Once()

	svc := podmonitor.New(newLogger(), cluster, memory.New(), testNamespace, testTailLines)
	require.NoError(t, svc.Start(ctx))

	cancel()
	waitState(t, svc, podmonitor.StateStopped)

	shutdownCtx, shutdownCancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer shutdownCancel()

	require.NoError(t, svc.Shutdown(shutdownCtx))
}

func TestService_ShutdownBeforeStart(t *testing.T) {
	t.Parallel()

	svc := podmonitor.New(newLogger(), mocks.NewMockCluster(t), memory.New(), testNamespace, testTailLines)

	require.NoError(t, svc.Shutdown(t.Context()))
	require.Equal(t, "pod-monitor", svc.Name())
}

func waitPhase(t *testing.T, store *memory.Store, key, phase string) {
	t.Helper()

	require.Eventually(t, func() bool {
		data, ok := store.Get(key)
		if !ok {
			return false
		}

		state, err := domain.ParseProcessingBlockState(data)
		if err != nil {
			return false
		}

		return string(state[domain.StateKeyK8sStatus]) == `"`+phase+`"`
	}, 5*time.Second, 10*time.Millisecond)
}
