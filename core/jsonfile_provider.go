package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONFileRegistry implements Registry on top of a single JSON document
// holding an array of RepoDetails. The document is re-read whenever its
// modification time or size changes, so edits made outside the process
// are picked up.
type JSONFileRegistry struct {
	path  string
	mu    sync.Mutex
	cache []RepoDetails
	index map[string]int // name -> position in cache

	modTime time.Time
	size    int64
}

func NewJSONFileRegistry(path string) (*JSONFileRegistry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create registry directory: %w", err)
	}
	r := &JSONFileRegistry{
		path:  path,
		cache: []RepoDetails{},
		index: make(map[string]int),
	}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return r, nil
}

// --- Loading and Saving ---

func (r *JSONFileRegistry) load() error {
	info, err := os.Stat(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil // no registry yet
	}
	if err != nil {
		return err
	}
	bytes, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}

	cache := []RepoDetails{}
	index := make(map[string]int)
	if len(bytes) > 0 {
		var entries []RepoDetails
		if err := json.Unmarshal(bytes, &entries); err != nil {
			return err
		}
		for _, e := range entries {
			if _, dup := index[e.Name]; dup {
				continue // older files may carry duplicates
			}
			index[e.Name] = len(cache)
			cache = append(cache, e)
		}
	}
	r.cache, r.index = cache, index
	r.modTime, r.size = info.ModTime(), info.Size()
	return nil
}

// refresh reloads the document if it changed on disk since the last load
// or save. A removed file keeps the cached entries.
func (r *JSONFileRegistry) refresh() error {
	info, err := os.Stat(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.ModTime().Equal(r.modTime) && info.Size() == r.size {
		return nil
	}
	return r.load()
}

// save writes the cache through a temp file so readers never see a partial document.
func (r *JSONFileRegistry) save() error {
	bytes, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".repo-details-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return err
	}
	if info, err := os.Stat(r.path); err == nil {
		r.modTime, r.size = info.ModTime(), info.Size()
	}
	return nil
}

// --- Interface Implementations ---

func (r *JSONFileRegistry) List() ([]RepoDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.refresh(); err != nil {
		return nil, fmt.Errorf("unable to reload registry: %w", err)
	}
	out := make([]RepoDetails, len(r.cache))
	copy(out, r.cache)
	return out, nil
}

func (r *JSONFileRegistry) Add(details RepoDetails) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.refresh(); err != nil {
		return false, fmt.Errorf("unable to reload registry: %w", err)
	}
	if _, exists := r.index[details.Name]; exists {
		return false, nil
	}
	r.index[details.Name] = len(r.cache)
	r.cache = append(r.cache, details)
	if err := r.save(); err != nil {
		r.cache = r.cache[:len(r.cache)-1]
		delete(r.index, details.Name)
		return false, fmt.Errorf("unable to write registry: %w", err)
	}
	return true, nil
}
