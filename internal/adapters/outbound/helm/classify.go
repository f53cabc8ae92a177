package helm

import (
	"errors"
	"strings"

	"github.com/skillcoder/helmdeploy-controller/internal/infra/shell"
)

type failureKind int

const (
	failureGeneric failureKind = iota
	failureAlreadyExists
	failureNotFound
)

// classify is the only place that interprets helm's error text. Helm has no
// machine-readable error codes, so a change of its wording needs an update here.
func classify(output string) failureKind {
	text := strings.ToLower(output)

	switch {
	case strings.Contains(text, "already exists"),
		strings.Contains(text, "cannot re-use a name that is still in use"):
		return failureAlreadyExists
	case strings.Contains(text, "not found"):
		return failureNotFound
	default:
		return failureGeneric
	}
}

// wrapFailure turns a command error into one of the typed errors of this package.
func wrapFailure(name string, err error) error {
	var cmdErr *shell.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.TimedOut {
		return err
	}

	switch classify(cmdErr.Output) {
	case failureAlreadyExists:
		return &ReleaseExistsError{Name: name, Err: err}
	case failureNotFound:
		return &ReleaseNotFoundError{Name: name, Err: err}
	default:
		return err
	}
}
