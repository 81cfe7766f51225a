package core

import (
	"log/slog"
	"sync"
)

// ProviderManager holds the registry and repository store built from the
// current configuration and allows both to be swapped when it changes.
type ProviderManager struct {
	mu       sync.RWMutex
	registry Registry
	store    RepositoryStore
	config   AppConfig
	log      *slog.Logger
}

func NewProviderManager(cfg AppConfig, log *slog.Logger) (*ProviderManager, error) {
	if log == nil {
		log = slog.Default()
	}
	pm := &ProviderManager{config: cfg, log: log}
	if err := pm.reinitialize(cfg); err != nil {
		return nil, err
	}
	return pm, nil
}

// Registry returns the current Registry instance.
func (pm *ProviderManager) Registry() Registry {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.registry
}

// Store returns the current RepositoryStore instance.
func (pm *ProviderManager) Store() RepositoryStore {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.store
}

// Config returns the configuration the providers were built from.
func (pm *ProviderManager) Config() AppConfig {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.config
}

// Snapshot returns the store together with the configuration it was built
// from, read under one lock so a concurrent swap cannot mix the two.
func (pm *ProviderManager) Snapshot() (RepositoryStore, AppConfig) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.store, pm.config
}

// reinitialize builds new providers; the old ones stay in place on failure.
func (pm *ProviderManager) reinitialize(cfg AppConfig) error {
	pm.log.Info("initializing providers", "storage_path", cfg.StoragePath)

	newStore, err := NewLocalStorage(cfg.ReposDir())
	if err != nil {
		return err
	}
	newRegistry, err := NewJSONFileRegistry(cfg.RegistryPath())
	if err != nil {
		return err
	}

	pm.store = newStore
	pm.registry = newRegistry
	pm.config = cfg
	return nil
}

// UpdateProviders rebuilds the registry and store from newConfig.
// Existing data is not migrated.
func (pm *ProviderManager) UpdateProviders(newConfig AppConfig) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.reinitialize(newConfig)
}
