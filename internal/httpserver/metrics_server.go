package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/shutdown"
)

const defaultMetricsPort = "9090"

// MetricsServer exposes the controller's Prometheus series on a dedicated
// port, away from the health endpoints.
type MetricsServer struct {
	listener *listener
	gatherer prometheus.Gatherer
}

// NewMetricsServer creates a server for GET /metrics backed by the default
// registry, where the metrics package registers its series.
func NewMetricsServer(logger *slog.Logger, port string) *MetricsServer {
	if port == "" {
		port = defaultMetricsPort
	}

	return &MetricsServer{
		listener: newListener(logger, "metrics-server", port, scrapeLimits),
		gatherer: prometheus.DefaultGatherer,
	}
}

var _ shutdown.Shutdowner = (*MetricsServer)(nil)

func (s *MetricsServer) Name() string {
	return s.listener.name
}

// Handler returns the router serving /metrics. Scrape errors are served as
// HTTP 500 and the handler's own request counts are exposed with the series.
func (s *MetricsServer) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{
			ErrorHandling:     promhttp.HTTPErrorOnError,
			EnableOpenMetrics: true,
		}),
	))

	return router
}

func (s *MetricsServer) Start(ctx context.Context) error {
	return s.listener.start(ctx, s.Handler())
}

func (s *MetricsServer) Ready() <-chan struct{} {
	return s.listener.ready
}

func (s *MetricsServer) Ping(ctx context.Context) error {
	return s.listener.ping(ctx)
}

func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.listener.shutdown(ctx)
}
