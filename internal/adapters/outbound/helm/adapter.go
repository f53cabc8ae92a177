package helm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Adapter drives the helm command line.
type Adapter struct {
	logger *slog.Logger
	runner runner
	binary string
}

// New creates a new helm adapter.
func New(
	logger *slog.Logger,
	runner runner,
	binary string,
) *Adapter {
	return &Adapter{
		logger: logger,
		runner: runner,
		binary: binary,
	}
}

// ListReleasesQuery returns the names of all releases in the namespace.
func (a *Adapter) ListReleasesQuery(
	ctx context.Context,
	namespace string,
) ([]string, error) {
	out, err := a.runner.Run(ctx, a.binary, "list", "-q", "-n", namespace)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}

	var releases []string

	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name != "" {
			releases = append(releases, name)
		}
	}

	return releases, nil
}

// InstallCommand installs a chart as the named release. valuesFile is optional.
func (a *Adapter) InstallCommand(
	ctx context.Context,
	release,
	chart,
	namespace,
	valuesFile string,
) error {
	args := []string{"install", release, chart, "-n", namespace}
	if valuesFile != "" {
		args = append(args, "-f", valuesFile)
	}

	_, err := a.runner.Run(ctx, a.binary, args...)
	if err != nil {
		return fmt.Errorf("install release: %w", wrapFailure(release, err))
	}

	return nil
}

// UninstallCommand removes the named release.
func (a *Adapter) UninstallCommand(
	ctx context.Context,
	release,
	namespace string,
) error {
	_, err := a.runner.Run(ctx, a.binary, "uninstall", release, "-n", namespace)
	if err != nil {
		return fmt.Errorf("uninstall release: %w", wrapFailure(release, err))
	}

	return nil
}

// RepoAddCommand registers a chart repository.
func (a *Adapter) RepoAddCommand(
	ctx context.Context,
	name,
	url string,
) error {
	_, err := a.runner.Run(ctx, a.binary, "repo", "add", name, url)
	if err != nil {
		return fmt.Errorf("add chart repository: %w", wrapFailure(name, err))
	}

	return nil
}

// RepoUpdateCommand refreshes the indexes of all registered repositories.
func (a *Adapter) RepoUpdateCommand(ctx context.Context) error {
	_, err := a.runner.Run(ctx, a.binary, "repo", "update")
	if err != nil {
		return fmt.Errorf("update chart repositories: %w", err)
	}

	return nil
}
