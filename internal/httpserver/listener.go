package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

const maxHeaderBytes = 1 << 12 // 4kb

// limits bounds one server's connections.
type limits struct {
	read       time.Duration
	readHeader time.Duration
	write      time.Duration
	idle       time.Duration
}

// healthLimits suit the small health responses polled by the kubelet.
var healthLimits = limits{
	read:       3 * time.Second,
	readHeader: 3 * time.Second,
	write:      5 * time.Second,
	idle:       60 * time.Second,
}

// scrapeLimits leave room for a full metrics exposition.
var scrapeLimits = limits{
	read:       5 * time.Second,
	readHeader: 3 * time.Second,
	write:      15 * time.Second,
	idle:       90 * time.Second,
}

// listener owns the lifecycle of one HTTP endpoint: listen, serve, ping and
// graceful shutdown. Server and MetricsServer differ only in their handler.
type listener struct {
	logger     *slog.Logger
	name       string
	port       string
	limits     limits
	server     *http.Server
	ready      chan struct{}
	inShutdown atomic.Bool
}

func newListener(logger *slog.Logger, name, port string, l limits) *listener {
	return &listener{
		logger: logger.With("component", name),
		name:   name,
		port:   port,
		limits: l,
		ready:  make(chan struct{}),
	}
}

// start opens the port synchronously so a taken port fails the caller, then
// serves in a goroutine.
func (l *listener) start(ctx context.Context, handler http.Handler) error {
	if l.inShutdown.Load() {
		l.logger.InfoContext(ctx, "server is shutting down, skipping start")

		return nil
	}

	addr := net.JoinHostPort("", l.port)
	l.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       l.limits.read,
		ReadHeaderTimeout: l.limits.readHeader,
		WriteTimeout:      l.limits.write,
		IdleTimeout:       l.limits.idle,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{
			Enable: true,
		},
	}

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s tcp: %w", l.name, err)
	}

	l.logger.InfoContext(ctx, "server listening", "addr", ln.Addr().String())

	go func() {
		close(l.ready)

		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.ErrorContext(ctx, "server error", "reason", err)
		}
	}()

	return nil
}

func (l *listener) ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ready:
		return nil
	default:
		return ErrNotReady
	}
}

func (l *listener) shutdown(ctx context.Context) error {
	if !l.inShutdown.CompareAndSwap(false, true) {
		l.logger.ErrorContext(ctx, "server is already shutting down, skipping shutdown")

		return nil
	}

	if l.server == nil {
		return nil
	}

	l.logger.InfoContext(ctx, "shutting down server")

	if err := l.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s shutdown: %w", l.name, err)
	}

	l.logger.InfoContext(ctx, "server closed properly")

	return nil
}
