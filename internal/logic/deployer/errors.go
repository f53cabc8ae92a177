package deployer

import "errors"

var (
	ErrCreate       = errors.New("create deployment")
	ErrDelete       = errors.New("delete deployment")
	ErrPurge        = errors.New("purge orphaned release")
	ErrValuesFile   = errors.New("write values file")
	ErrNilRecord    = errors.New("nil deployment record")
	ErrNotHelmChart = errors.New("deployment is not helm-managed")
)
