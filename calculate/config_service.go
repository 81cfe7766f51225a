package calculate

import (
	"github.com/Dr-42/isogit/core"
)

// ProviderUpdater swaps providers after a configuration change.
type ProviderUpdater interface {
	UpdateProviders(newConfig core.AppConfig) error
}

type ConfigService struct {
	config    *core.ConfigManager
	providers ProviderUpdater
}

func NewConfigService(config *core.ConfigManager, providers ProviderUpdater) *ConfigService {
	return &ConfigService{config: config, providers: providers}
}

// SetStoragePath updates the storage root, saves it, and rebuilds the
// registry and repository store on the new location. Existing data is not moved.
func (s *ConfigService) SetStoragePath(newPath string) error {
	currentConfig := s.config.Get()
	currentConfig.StoragePath = newPath

	// Swap first so a location that cannot be initialised is never persisted.
	if err := s.providers.UpdateProviders(currentConfig); err != nil {
		return err
	}
	return s.config.Update(currentConfig)
}
