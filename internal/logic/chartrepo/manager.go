package chartrepo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/metrics"
)

// Repository is a chart repository known to helm.
type Repository struct {
	Name string
	URL  string
}

// Helm is the port to the deployment tool's repository commands.
type Helm interface {
	RepoAddCommand(ctx context.Context, name, url string) error
	RepoUpdateCommand(ctx context.Context) error
}

// alreadyExists is a private interface for checking "already exists" errors
// without importing the adapter package.
type alreadyExists interface {
	IsAlreadyExists()
}

// Manager keeps the configured chart repositories registered and indexed.
type Manager struct {
	logger *slog.Logger
	helm   Helm
	repos  []Repository
}

// New creates a new chart repository manager.
func New(logger *slog.Logger, helm Helm, repos []Repository) *Manager {
	return &Manager{
		logger: logger,
		helm:   helm,
		repos:  repos,
	}
}

// Repositories returns the configured repositories.
func (m *Manager) Repositories() []Repository {
	return m.repos
}

// Refresh registers every repository and updates the indexes. Failures are
// logged only; the next scheduled refresh tries again.
func (m *Manager) Refresh(ctx context.Context) {
	logger := m.logger.With("component", "chartrepo")

	for _, repo := range m.repos {
		err := m.helm.RepoAddCommand(ctx, repo.Name, repo.URL)
		if err == nil {
			continue
		}

		var target alreadyExists
		if errors.As(err, &target) {
			logger.DebugContext(ctx, "chart repository already registered", "name", repo.Name)

			continue
		}

		logger.ErrorContext(ctx, "could not add chart repository",
			"name", repo.Name,
			"url", repo.URL,
			"reason", err,
		)
	}

	err := m.helm.RepoUpdateCommand(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "could not refresh chart repositories", "reason", err)
		metrics.RecordChartRepoRefresh(metrics.ResultFailure)

		return
	}

	logger.InfoContext(ctx, "chart repositories refreshed", "count", len(m.repos))
	metrics.RecordChartRepoRefresh(metrics.ResultSuccess)
}
