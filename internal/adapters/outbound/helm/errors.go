package helm

import "fmt"

// ReleaseExistsError is returned when helm refuses to install over an existing release.
type ReleaseExistsError struct {
	Name string
	Err  error
}

func (e *ReleaseExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %v", e.Name, e.Err)
}

func (e *ReleaseExistsError) Unwrap() error { return e.Err }

func (e *ReleaseExistsError) IsAlreadyExists() {}

// ReleaseNotFoundError is returned when helm cannot find the release or repository.
type ReleaseNotFoundError struct {
	Name string
	Err  error
}

func (e *ReleaseNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Name, e.Err)
}

func (e *ReleaseNotFoundError) Unwrap() error { return e.Err }

func (e *ReleaseNotFoundError) IsNotFound() {}
