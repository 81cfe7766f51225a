package core

import "fmt"

// RepositoryNotFoundError is returned when no repository with the given name exists on disk.
type RepositoryNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *RepositoryNotFoundError) Error() string {
	return fmt.Sprintf("repository %q not found", e.Name)
}

// StorageOpenError is returned when a repository exists but cannot be opened.
type StorageOpenError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *StorageOpenError) Error() string {
	return fmt.Sprintf("unable to open repository %q: %v", e.Name, e.Err)
}

func (e *StorageOpenError) Unwrap() error { return e.Err }

// TraversalError is returned when a commit or tree cannot be resolved while
// walking history. Path is empty when the failure is not tied to a tree entry.
type TraversalError struct {
	Object string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("traversal failed at %q (%s): %v", e.Path, e.Object, e.Err)
	}
	return fmt.Sprintf("traversal failed at %s: %v", e.Object, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// InvalidNameError is returned for repository names that cannot be mapped safely to a path.
type InvalidNameError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid repository name %q: %s", e.Name, e.Reason)
}
