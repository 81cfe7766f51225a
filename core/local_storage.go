package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// LocalStorage implements RepositoryStore on the local file system.
// Repositories live at <basePath>/<name>.git.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("unable to create repositories directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.basePath, name+".git")
}

func (s *LocalStorage) Exists(name string) (bool, error) {
	if err := ValidateRepoName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) Create(name string) (bool, error) {
	exists, err := s.Exists(name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	// basePath may have been removed since construction
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return false, fmt.Errorf("unable to create repositories directory: %w", err)
	}
	if _, err := git.PlainInit(s.Path(name), true); err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("unable to create repository %q: %w", name, err)
	}
	return true, nil
}

func (s *LocalStorage) Open(name string) (*git.Repository, error) {
	exists, err := s.Exists(name)
	if err != nil {
		var invalid *InvalidNameError
		if errors.As(err, &invalid) {
			return nil, err
		}
		return nil, &StorageOpenError{Name: name, Err: err}
	}
	if !exists {
		return nil, &RepositoryNotFoundError{Name: name}
	}
	repo, err := git.PlainOpen(s.Path(name))
	if err != nil {
		return nil, &StorageOpenError{Name: name, Err: err}
	}
	return repo, nil
}
