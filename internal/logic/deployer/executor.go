package deployer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
	"github.com/skillcoder/helmdeploy-controller/internal/infra/metrics"
	"github.com/skillcoder/helmdeploy-controller/internal/logic/release"
)

const valuesFilePattern = "helmdeploy-values-*.yaml"

// Executor turns deployment records into helm install and uninstall calls.
type Executor struct {
	logger    *slog.Logger
	helm      Helm
	namer     release.Namer
	namespace string
	ownRepo   string
	tempDir   string
}

// New creates a new deployment executor. Charts without a repository part are
// resolved against ownRepo. Values files are written to tempDir, or to the
// system temp directory when tempDir is empty.
func New(
	logger *slog.Logger,
	helm Helm,
	namer release.Namer,
	namespace,
	ownRepo,
	tempDir string,
) *Executor {
	return &Executor{
		logger:    logger,
		helm:      helm,
		namer:     namer,
		namespace: namespace,
		ownRepo:   ownRepo,
		tempDir:   tempDir,
	}
}

// ChartReference qualifies a bare chart name with the default repository.
func ChartReference(defaultRepo, chart string) string {
	if strings.Contains(chart, "/") {
		return chart
	}

	return defaultRepo + "/" + chart
}

// Create installs the release for a deployment.
//
// If helm reports that the release already exists, the release is assumed to be
// left over from a crash: it is uninstalled once and OutcomePurged is returned.
// Create never retries the install itself.
func (e *Executor) Create(
	ctx context.Context,
	id string,
	dpl *domain.Deployment,
) (Outcome, error) {
	if dpl == nil {
		return OutcomeFailed, fmt.Errorf("%w: %s: %w", ErrCreate, id, ErrNilRecord)
	}

	if !dpl.IsHelm() {
		return OutcomeFailed, fmt.Errorf("%w: %s: %w", ErrCreate, id, ErrNotHelmChart)
	}

	releaseName := e.namer.ReleaseName(id)
	chart := ChartReference(e.ownRepo, dpl.Args.Chart)
	logger := e.logger.With("deployment", id, "release", releaseName, "chart", chart)

	logger.InfoContext(ctx, "creating deployment")

	valuesFile := ""

	if dpl.Args.Values != nil {
		path, err := e.writeValuesFile(ctx, logger, dpl.Args.Values)
		if err != nil {
			metrics.RecordReleaseOperation(metrics.OperationCreate, metrics.ResultFailure)

			return OutcomeFailed, fmt.Errorf("%w: %s: %w", ErrCreate, id, err)
		}

		defer func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				logger.WarnContext(ctx, "failed to remove values file", "path", path, "reason", err)
			}
		}()

		valuesFile = path
	}

	err := e.helm.InstallCommand(ctx, releaseName, chart, e.namespace, valuesFile)
	if err == nil {
		metrics.RecordReleaseOperation(metrics.OperationCreate, metrics.ResultSuccess)

		return OutcomeCreated, nil
	}

	var existsTarget alreadyExists
	if !errors.As(err, &existsTarget) {
		metrics.RecordReleaseOperation(metrics.OperationCreate, metrics.ResultFailure)

		return OutcomeFailed, fmt.Errorf("%w: %s: %w", ErrCreate, id, err)
	}

	metrics.RecordReleaseOperation(metrics.OperationCreate, metrics.ResultConflict)
	logger.InfoContext(ctx, "release already exists, purging deployment")

	err = e.helm.UninstallCommand(ctx, releaseName, e.namespace)
	if err != nil {
		var notFoundTarget notFound
		if !errors.As(err, &notFoundTarget) {
			return OutcomeFailed, fmt.Errorf("%w: %s: %w", ErrPurge, id, err)
		}
	}

	return OutcomePurged, nil
}

// Delete uninstalls the release for a deployment. A release that is already
// gone counts as deleted.
func (e *Executor) Delete(ctx context.Context, id string) error {
	releaseName := e.namer.ReleaseName(id)
	logger := e.logger.With("deployment", id, "release", releaseName)

	logger.InfoContext(ctx, "deleting deployment")

	err := e.helm.UninstallCommand(ctx, releaseName, e.namespace)
	if err != nil {
		var target notFound
		if errors.As(err, &target) {
			logger.DebugContext(ctx, "release already gone")
			metrics.RecordReleaseOperation(metrics.OperationDelete, metrics.ResultNotFound)

			return nil
		}

		metrics.RecordReleaseOperation(metrics.OperationDelete, metrics.ResultFailure)

		return fmt.Errorf("%w: %s: %w", ErrDelete, id, err)
	}

	metrics.RecordReleaseOperation(metrics.OperationDelete, metrics.ResultSuccess)

	return nil
}

func (e *Executor) writeValuesFile(
	ctx context.Context,
	logger *slog.Logger,
	values map[string]any,
) (string, error) {
	data, err := yaml.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %w", ErrValuesFile, err)
	}

	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		logger.DebugContext(ctx, "values -> "+line)
	}

	file, err := os.CreateTemp(e.tempDir, valuesFilePattern)
	if err != nil {
		return "", fmt.Errorf("%w: create: %w", ErrValuesFile, err)
	}

	path := file.Name()

	_, err = file.Write(data)
	closeErr := file.Close()

	if err = errors.Join(err, closeErr); err != nil {
		_ = os.Remove(path)

		return "", fmt.Errorf("%w: %w", ErrValuesFile, err)
	}

	return path, nil
}
