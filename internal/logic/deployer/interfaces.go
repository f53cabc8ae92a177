package deployer

import "context"

// Helm is the port to the deployment tool.
type Helm interface {
	InstallCommand(
		ctx context.Context,
		release,
		chart,
		namespace,
		valuesFile string,
	) error

	UninstallCommand(
		ctx context.Context,
		release,
		namespace string,
	) error
}

// alreadyExists is a private interface for checking "already exists" errors
// without importing the adapter package.
type alreadyExists interface {
	IsAlreadyExists()
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}
