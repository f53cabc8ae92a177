package release

import (
	"context"
	"fmt"
	"log/slog"
)

type lister interface {
	ListReleasesQuery(ctx context.Context, namespace string) ([]string, error)
}

// Inventory reports the deployment ids that currently have a live release.
type Inventory struct {
	logger    *slog.Logger
	helm      lister
	namer     Namer
	namespace string
}

// NewInventory creates a new release inventory.
func NewInventory(
	logger *slog.Logger,
	helm lister,
	namer Namer,
	namespace string,
) *Inventory {
	return &Inventory{
		logger:    logger,
		helm:      helm,
		namer:     namer,
		namespace: namespace,
	}
}

// List returns the ids of deployments with a release in the namespace.
// Foreign releases are left out.
func (i *Inventory) List(ctx context.Context) ([]string, error) {
	releases, err := i.helm.ListReleasesQuery(ctx, i.namespace)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}

	seen := make(map[string]struct{}, len(releases))
	ids := make([]string, 0, len(releases))

	for _, name := range releases {
		id, ok := i.namer.DeploymentID(name)
		if !ok {
			i.logger.DebugContext(ctx, "ignoring foreign release", "release", name)

			continue
		}

		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}
