package config

import "time"

// Env key constants. All controller configuration env vars use the SDP_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h) and bare integers
// are read as seconds.

// Helm binary name or path.
const envKeyHelm = "SDP_HELM"

// Upper bound for a single helm invocation.
const (
	envKeyHelmTimeout = "SDP_HELM_TIMEOUT"
	envMinHelmTimeout = time.Second
)

// Namespace that holds the managed releases and the watched pods.
const envKeyHelmNamespace = "SDP_HELM_NAMESPACE"

// Prefix prepended to every managed release name.
const envKeyHelmPrefix = "SDP_HELM_PREFIX"

// URL of the controller's own chart repository, registered as "helmdeploy".
const envKeyChartRepoURL = "SDP_CHART_REPO_URL"

// Interval between chart repository refreshes.
const (
	envKeyChartRepoRefresh = "SDP_CHART_REPO_REFRESH"
	envMinChartRepoRefresh = 10 * time.Second
)

// Cron expression for chart repository refreshes; overrides SDP_CHART_REPO_REFRESH.
const envKeyChartRepoSchedule = "SDP_CHART_REPO_SCHEDULE"

// Additional chart repositories as name=url pairs separated by commas.
const envKeyChartRepoList = "SDP_CHART_REPO_LIST"

// Configuration store backend: etcd or memory.
const envKeyConfigBackend = "SDP_CONFIG_BACKEND"

// Configuration store address.
const (
	envKeyConfigHost = "SDP_CONFIG_HOST"
	envKeyConfigPort = "SDP_CONFIG_PORT"
)

// Maximum number of helm operations running at once.
const envKeyReconcileConcurrency = "SDP_RECONCILE_CONCURRENCY"

// Number of log lines fetched from a workflow pod.
const envKeyPodLogTailLines = "SDP_POD_LOG_TAIL_LINES"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "SDP_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "SDP_LOG_FORMAT"

// Port for health/readiness HTTP server.
const envKeyHTTPPort = "SDP_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "SDP_METRICS_PORT"

// Pinger check interval.
const (
	envKeyPingerInterval = "SDP_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// File whose presence requests termination.
const envKeyTerminationFile = "SDP_TERMINATION_FILE"

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "SDP_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "SDP_KUBE_MASTER"

// Standard k8s env keys used as fallback when SDP_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
