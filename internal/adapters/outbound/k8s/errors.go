package k8s

import "errors"

// ErrNoCredentials is returned when no cluster credentials are configured or
// discoverable. It is a valid configuration: the pod monitor does not run.
var ErrNoCredentials = errors.New("no cluster credentials available")

// PodNotFoundError represents a pod that no longer exists.
type PodNotFoundError struct {
	Name string
}

func (e *PodNotFoundError) Error() string {
	return "pod " + e.Name + " not found"
}

func (e *PodNotFoundError) IsNotFound() {}
