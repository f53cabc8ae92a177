package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/config"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/cronparser"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
)

type allChannelsCloseCase struct {
	name                         string
	giveNumChannels              int
	giveContextCancelBeforeClose bool
	wantClosed                   bool
}

func TestAllChannelsClose(t *testing.T) {
	logger := slog.Default()

	tests := []allChannelsCloseCase{
		{
			name:            "zero channels closes immediately",
			giveNumChannels: 0,
			wantClosed:      true,
		},
		{
			name:            "one channel closes when it closes",
			giveNumChannels: 1,
			wantClosed:      true,
		},
		{
			name:            "two channels close when both close",
			giveNumChannels: 2,
			wantClosed:      true,
		},
		{
			name:                         "context cancelled then channels close",
			giveNumChannels:              2,
			giveContextCancelBeforeClose: true,
			wantClosed:                   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()

			if tt.giveContextCancelBeforeClose {
				var cancel context.CancelFunc

				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			chans := make([]<-chan struct{}, 0, tt.giveNumChannels)
			readyChans := make([]chan struct{}, 0, tt.giveNumChannels)

			for range tt.giveNumChannels {
				ch := make(chan struct{})

				readyChans = append(readyChans, ch)
				chans = append(chans, ch)
			}

			out := allChannelsClose(ctx, logger, chans...)

			if tt.giveNumChannels == 0 {
				select {
				case <-out:
				case <-time.After(100 * time.Millisecond):
					t.Fatal("expected out channel to close immediately")
				}

				return
			}

			for _, ch := range readyChans {
				close(ch)
			}

			select {
			case <-out:
			case <-time.After(500 * time.Millisecond):
				t.Fatal("expected out channel to close after all input channels closed")
			}
		})
	}
}

func TestStaleAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 10, 2, 0, 0, time.UTC)

	tests := []struct {
		name        string
		giveSpec    string
		giveTimeout time.Duration
		want        time.Duration
	}{
		{
			name:        "fixed interval",
			giveSpec:    cronparser.EverySpec(5 * time.Minute),
			giveTimeout: 300 * time.Second,
			want:        20 * time.Minute,
		},
		{
			name:        "hourly cron",
			giveSpec:    "0 * * * *",
			giveTimeout: time.Minute,
			want:        2*time.Hour + 2*time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schedule, err := cronparser.Parse(tt.giveSpec)
			require.NoError(t, err)
			require.Equal(t, tt.want, staleAfter(schedule, tt.giveTimeout, now))
		})
	}
}

func TestShutdownTimeout(t *testing.T) {
	t.Parallel()

	got := shutdownTimeout(300 * time.Second)

	require.Greater(t, got, 300*time.Second)
	require.Greater(t, got, shutdown.DefaultTimeout)
	require.Equal(t, 330*time.Second, got)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	store, err := newStore(slog.New(slog.DiscardHandler), &config.Config{ConfigBackend: config.BackendMemory})
	require.NoError(t, err)
	require.Equal(t, "config-db", store.Name())
	require.NoError(t, store.Ping(t.Context()))
}
