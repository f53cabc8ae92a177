package appstate_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/appstate"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/pinger"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown/mocks"
)

func newAppState(t *testing.T, pingers *pinger.Service) *appstate.AppState {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if pingers == nil {
		pingers = pinger.New(logger, time.Second)
	}

	return appstate.New(logger, time.Now(), "", make(chan os.Signal, 1), pingers)
}

type failingPinger struct{}

func (failingPinger) Name() string                 { return "config-db" }
func (failingPinger) Ping(context.Context) error   { return errors.New("connection refused") }
func (failingPinger) PingerTimeout() time.Duration { return 10 * time.Millisecond }

type stateReporter struct{ state string }

func (r stateReporter) Name() string   { return "pod-monitor" }
func (r stateReporter) Status() string { return r.state }

func TestAppState_StateTransitions(t *testing.T) {
	t.Parallel()

	t.Run("init to starting to running to terminating", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		s := newAppState(t, nil)

		require.NoError(t, s.SetStarting(ctx))
		require.Equal(t, appstate.StateStarting, s.GetState())
		require.NoError(t, s.SetRunning(ctx))
		require.Equal(t, appstate.StateRunning, s.GetState())
		require.NoError(t, s.SetTerminating(ctx))
		require.Equal(t, appstate.StateTerminating, s.GetState())
	})

	t.Run("invalid: init to running", func(t *testing.T) {
		t.Parallel()

		s := newAppState(t, nil)

		require.ErrorIs(t, s.SetRunning(t.Context()), appstate.ErrInvalidStateTransition)
		require.Equal(t, appstate.StateInit, s.GetState())
	})

	t.Run("invalid: terminated cannot change", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		s := newAppState(t, nil)

		require.NoError(t, s.SetStarting(ctx))
		require.NoError(t, s.SetRunning(ctx))
		require.NoError(t, s.Shutdown(ctx))
		require.Equal(t, appstate.StateTerminated, s.GetState())

		require.Error(t, s.SetStarting(ctx))
		require.ErrorIs(t, s.SetTerminating(ctx), appstate.ErrAlreadyTerminated)
		require.Equal(t, appstate.StateTerminated, s.GetState())
	})
}

func TestAppState_QueryMethods(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := newAppState(t, nil)

	require.Equal(t, appstate.StateInit, s.GetState())
	require.False(t, s.IsHealthy())
	require.False(t, s.IsReady())

	require.NoError(t, s.SetStarting(ctx))
	require.False(t, s.IsReady())

	require.NoError(t, s.SetRunning(ctx))
	require.True(t, s.IsHealthy())
	require.True(t, s.IsReady())
	require.Greater(t, s.GetUptime(), time.Duration(0))
	require.False(t, s.GetStartTime().IsZero())
}

func TestAppState_FailingPingerMakesUnhealthy(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	pingers := pinger.New(logger, time.Hour)
	s := newAppState(t, pingers)

	require.NoError(t, s.RegisterPinger(failingPinger{}))
	require.NoError(t, pingers.Start(ctx))
	<-pingers.Ready()

	require.NoError(t, s.SetStarting(ctx))
	require.NoError(t, s.SetRunning(ctx))

	require.False(t, s.IsHealthy())
	require.False(t, s.IsReady())
	require.Contains(t, s.GetAllStats(), "config-db")
}

func TestAppState_ComponentStates(t *testing.T) {
	t.Parallel()

	s := newAppState(t, nil)
	s.RegisterReporter(stateReporter{state: "running"})

	require.Equal(t, map[string]string{"pod-monitor": "running"}, s.GetComponentStates())
}

func TestAppState_Shutdown(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := newAppState(t, nil)

	var order []string

	for _, name := range []string{"http-server", "controller"} {
		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return(name).Once()
		m.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(context.Context) error {
			order = append(order, name)

			return nil
		}).Once()

		require.NoError(t, s.RegisterShutdowner(m))
	}

	require.NoError(t, s.SetStarting(ctx))
	require.NoError(t, s.SetRunning(ctx))

	require.NoError(t, s.Shutdown(ctx))
	require.Equal(t, appstate.StateTerminated, s.GetState())
	require.Equal(t, []string{"controller", "http-server"}, order)

	// Shutdown again is a no-op.
	require.NoError(t, s.Shutdown(ctx))
}

func TestAppState_ShutdownTimeout(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	s := newAppState(t, nil)
	s.SetShutdownTimeout(5 * time.Minute)

	m := mocks.NewMockShutdowner(t)
	m.EXPECT().Name().Return("controller").Once()
	m.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.Greater(t, time.Until(deadline), 4*time.Minute)

		return nil
	}).Once()

	require.NoError(t, s.RegisterShutdowner(m))
	require.NoError(t, s.SetStarting(ctx))
	require.NoError(t, s.SetRunning(ctx))

	require.NoError(t, s.Shutdown(ctx))
	require.Equal(t, appstate.StateTerminated, s.GetState())
}

func TestAppState_StartPinger(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	s := newAppState(t, nil)

	ready, err := s.StartPinger(ctx)
	require.NoError(t, err)

	select {
	case <-ready:
	case <-time.After(time.Second):
		t.Fatal("pinger did not finish its first round")
	}

	cancel()
	require.NoError(t, s.Shutdown(context.Background()))
}
