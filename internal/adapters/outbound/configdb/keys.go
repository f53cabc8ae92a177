// Package configdb holds the key layout of the configuration store shared by
// its backends.
package configdb

import (
	"sort"
	"strings"
)

// Key layout of the configuration store.
const (
	DeploymentPrefix      = "/deploy/"
	ProcessingBlockPrefix = "/pb/"
	stateSuffix           = "/state"
)

// DeploymentKey returns the key of a deployment record.
func DeploymentKey(id string) string {
	return DeploymentPrefix + id
}

// ProcessingBlockStateKey returns the key of a processing block state record.
func ProcessingBlockStateKey(pbID string) string {
	return ProcessingBlockPrefix + pbID + stateSuffix
}

// DeploymentIDs extracts sorted deployment ids from deployment keys. Keys of
// nested paths below a deployment are skipped.
func DeploymentIDs(keys []string) []string {
	ids := make([]string, 0, len(keys))

	for _, key := range keys {
		id, ok := strings.CutPrefix(key, DeploymentPrefix)
		if !ok || id == "" || strings.Contains(id, "/") {
			continue
		}

		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
