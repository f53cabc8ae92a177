package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// OwnRepositoryName is the helm name of the repository configured by
// SDP_CHART_REPO_URL. Bare chart names resolve against it.
const OwnRepositoryName = "helmdeploy"

const (
	BackendEtcd   = "etcd"
	BackendMemory = "memory"
)

const (
	defaultChartRepoURL  = "https://gitlab.com/ska-telescope/sdp/ska-sdp-helmdeploy-charts/-/raw/master/chart-repo/"
	defaultChartRepoList = "dask=https://helm.dask.org/"
)

// Repository is a named chart repository.
type Repository struct {
	Name string `validate:"required"`
	URL  string `validate:"required,url"`
}

// Config is the controller configuration. It is not modified after Load.
type Config struct {
	Helm              string        `validate:"required"`
	HelmTimeout       time.Duration `validate:"required"`
	HelmNamespace     string        `validate:"required"`
	HelmPrefix        string
	ChartRepoRefresh  time.Duration
	ChartRepoSchedule string
	ChartRepos        []Repository `validate:"dive"`

	ConfigBackend  string `validate:"oneof=etcd memory"`
	ConfigEndpoint string `validate:"required,hostname_port"`

	ReconcileConcurrency int   `validate:"min=1"`
	PodLogTailLines      int64 `validate:"min=1"`

	LogLevel            string `validate:"oneof=debug info warn error"`
	LogFormat           string `validate:"oneof=json text"`
	HTTPPort            string `validate:"required,numeric"`
	MetricsPort         string `validate:"required,numeric"`
	PingerInterval      time.Duration
	TerminationFilePath string

	KubeConfig string
	KubeMaster string
}

var _validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Helm:                getEnvOrDefault(envKeyHelm, "helm"),
		HelmNamespace:       getEnvOrDefault(envKeyHelmNamespace, "sdp"),
		HelmPrefix:          os.Getenv(envKeyHelmPrefix),
		ChartRepoSchedule:   strings.TrimSpace(os.Getenv(envKeyChartRepoSchedule)),
		ConfigBackend:       getEnvOrDefault(envKeyConfigBackend, BackendEtcd),
		LogLevel:            getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:           getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:            getEnvOrDefault(envKeyHTTPPort, "8080"),
		MetricsPort:         getEnvOrDefault(envKeyMetricsPort, "9090"),
		TerminationFilePath: getEnvOrDefault(envKeyTerminationFile, "/mnt/signal/terminating"),
		KubeConfig:          getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:          getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
	}

	cfg.ConfigEndpoint = net.JoinHostPort(
		getEnvOrDefault(envKeyConfigHost, "127.0.0.1"),
		getEnvOrDefault(envKeyConfigPort, "2379"),
	)

	var err error

	cfg.HelmTimeout, err = parseDuration(envKeyHelmTimeout, "300", envMinHelmTimeout)
	if err != nil {
		return nil, err
	}

	cfg.ChartRepoRefresh, err = parseDuration(envKeyChartRepoRefresh, "300", envMinChartRepoRefresh)
	if err != nil {
		return nil, err
	}

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, "10s", envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	cfg.ReconcileConcurrency, err = parseInt(envKeyReconcileConcurrency, "4")
	if err != nil {
		return nil, err
	}

	tailLines, err := parseInt(envKeyPodLogTailLines, "100")
	if err != nil {
		return nil, err
	}

	cfg.PodLogTailLines = int64(tailLines)

	cfg.ChartRepos, err = parseRepositories(
		getEnvOrDefault(envKeyChartRepoURL, defaultChartRepoURL),
		getEnvOrDefault(envKeyChartRepoList, defaultChartRepoList),
	)
	if err != nil {
		return nil, err
	}

	if err := _validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// parseRepositories returns the own repository followed by the name=url
// pairs of list. The own repository is always present since bare chart names
// resolve against it.
func parseRepositories(ownURL, list string) ([]Repository, error) {
	repos := []Repository{{Name: OwnRepositoryName, URL: strings.TrimSpace(ownURL)}}

	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, url, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("parse %s entry %q: %w", envKeyChartRepoList, entry, ErrInvalidRepository)
		}

		repos = append(repos, Repository{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}

	return repos, nil
}

func parseDuration(key, defaultValue string, minimum time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)

	var (
		value time.Duration
		err   error
	)

	if seconds, convErr := strconv.Atoi(raw); convErr == nil {
		value = time.Duration(seconds) * time.Second
	} else {
		value, err = time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", key, err)
		}
	}

	if value < minimum {
		return 0, fmt.Errorf("parse %s: %s is less than %s: %w", key, value, minimum, ErrBelowMinimum)
	}

	return value, nil
}

func parseInt(key, defaultValue string) (int, error) {
	value, err := strconv.Atoi(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return value, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return os.Getenv(fallbackKey)
}
