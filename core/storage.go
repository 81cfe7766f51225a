package core

import (
	"regexp"

	"github.com/go-git/go-git/v5"
)

// RepositoryStore abstracts where bare repositories live and how they are
// created and opened.
type RepositoryStore interface {
	// Path returns the on-disk location for the named repository.
	Path(name string) string
	Exists(name string) (bool, error)
	// Create initialises a bare repository if one is not already present.
	// It reports whether a new repository was created.
	Create(name string) (bool, error)
	Open(name string) (*git.Repository, error)
}

var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateRepoName rejects names that could escape the repositories directory.
func ValidateRepoName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	case len(name) > 255:
		return &InvalidNameError{Name: name, Reason: "name is too long"}
	case name[0] == '.':
		return &InvalidNameError{Name: name, Reason: "name must not start with '.'"}
	case !repoNamePattern.MatchString(name):
		return &InvalidNameError{Name: name, Reason: "only letters, digits, '.', '_' and '-' are allowed"}
	}
	return nil
}
