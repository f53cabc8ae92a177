package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Release operations.
const (
	OperationCreate = "create"
	OperationDelete = "delete"
)

// Operation and cycle results.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultSkipped  = "skipped"
	ResultDropped  = "dropped"
)

var releaseOperationsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "helmdeploy_release_operations_total",
		Help: "Total number of helm release create/delete calls by result.",
	},
	[]string{"operation", "result"},
)

var reconcileCyclesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "helmdeploy_reconcile_cycles_total",
		Help: "Total number of reconciliation cycles by result.",
	},
	[]string{"result"},
)

var reconcileCycleDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "helmdeploy_reconcile_cycle_duration_seconds",
		Help:    "Duration of reconciliation cycles.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	},
)

var managedReleases = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "helmdeploy_managed_releases",
		Help: "Number of live releases mapped to deployments at the start of the last cycle.",
	},
)

var chartRepoRefreshTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "helmdeploy_chart_repo_refresh_total",
		Help: "Total number of chart repository index refreshes by result.",
	},
	[]string{"result"},
)

var podStatusUpdatesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "helmdeploy_pod_status_updates_total",
		Help: "Total number of pod events handled by the status monitor by result.",
	},
	[]string{"result"},
)

var componentUp = promauto.With(prometheus.DefaultRegisterer).NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "helmdeploy_component_up",
		Help: "Whether the last health ping of a component succeeded (1) or failed (0).",
	},
	[]string{"component"},
)

var componentPingDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "helmdeploy_component_ping_duration_seconds",
		Help:    "Latency of component health pings.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	},
	[]string{"component"},
)

// RecordReleaseOperation counts a helm create or delete call.
func RecordReleaseOperation(operation, result string) {
	releaseOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordReconcileCycle counts a finished cycle and observes its duration.
func RecordReconcileCycle(result string, seconds float64) {
	reconcileCyclesTotal.WithLabelValues(result).Inc()
	reconcileCycleDuration.Observe(seconds)
}

// SetManagedReleases sets the number of releases owned by this controller.
func SetManagedReleases(n int) {
	managedReleases.Set(float64(n))
}

// RecordChartRepoRefresh counts a chart repository refresh.
func RecordChartRepoRefresh(result string) {
	chartRepoRefreshTotal.WithLabelValues(result).Inc()
}

// RecordPodStatusUpdate counts a pod event handled by the status monitor.
func RecordPodStatusUpdate(result string) {
	podStatusUpdatesTotal.WithLabelValues(result).Inc()
}

// RecordComponentPing records the outcome and latency of a health ping.
func RecordComponentPing(component string, up bool, seconds float64) {
	value := 0.0
	if up {
		value = 1
	}

	componentUp.WithLabelValues(component).Set(value)
	componentPingDuration.WithLabelValues(component).Observe(seconds)
}
