package core

// Registry persists the {name, description} metadata shown in the repository list.
// It is independent of the repositories on disk.
type Registry interface {
	List() ([]RepoDetails, error)
	// Add registers details and reports whether a new entry was written.
	// An existing entry with the same name is left untouched.
	Add(details RepoDetails) (bool, error)
}
