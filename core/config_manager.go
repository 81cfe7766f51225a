package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// AppConfig defines application configuration parameters.
type AppConfig struct {
	StoragePath        string `json:"storage_path"`
	Port               int    `json:"port"`
	MaxCommits         int    `json:"max_commits"`          // 0 means unlimited
	MaxTreeDepth       int    `json:"max_tree_depth"`       // 0 means unlimited
	ListTimeoutSeconds int    `json:"list_timeout_seconds"` // 0 means no deadline
}

const (
	defaultStoragePath = "."
	defaultPort        = 8080
	configDirName      = "isogit"
	configFileName     = "config.json"

	reposDirName     = "repos"
	registryFileName = "repo-details.json"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() AppConfig {
	return AppConfig{StoragePath: defaultStoragePath, Port: defaultPort}
}

// ReposDir is the directory holding the bare repositories.
func (c AppConfig) ReposDir() string {
	return filepath.Join(c.StoragePath, reposDirName)
}

// RegistryPath is the location of the metadata registry document.
func (c AppConfig) RegistryPath() string {
	return filepath.Join(c.StoragePath, registryFileName)
}

// ListTimeout is the deadline applied to a single commit listing.
func (c AppConfig) ListTimeout() time.Duration {
	return time.Duration(c.ListTimeoutSeconds) * time.Second
}

// DefaultConfigPath determines the absolute path of the configuration file.
// ISOGIT_CONFIG takes precedence over the user config directory.
func DefaultConfigPath() string {
	if p := os.Getenv("ISOGIT_CONFIG"); p != "" {
		return p
	}
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(userConfigDir, configDirName, configFileName)
}

// ConfigManager loads, holds and persists the application configuration.
type ConfigManager struct {
	path string
	log  *slog.Logger

	once sync.Once
	mu   sync.RWMutex
	cfg  AppConfig
}

func NewConfigManager(path string, log *slog.Logger) *ConfigManager {
	if log == nil {
		log = slog.Default()
	}
	return &ConfigManager{path: path, log: log}
}

// Load reads the configuration file once. A missing file is created with
// default values; an unreadable or malformed file falls back to defaults.
// Environment overrides are applied on top in both cases.
func (m *ConfigManager) Load() AppConfig {
	m.once.Do(func() {
		m.cfg = DefaultConfig()
		defer m.applyEnv()

		data, err := os.ReadFile(m.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				m.log.Info("config file not found, creating default", "path", m.path)
				if err := m.save(); err != nil {
					m.log.Warn("failed to save default config", "error", err)
				}
				return
			}
			m.log.Warn("failed to read config file", "path", m.path, "error", err)
			return
		}

		loaded := DefaultConfig()
		if err := json.Unmarshal(data, &loaded); err != nil {
			m.log.Warn("failed to parse config file, using defaults", "path", m.path, "error", err)
			return
		}
		if loaded.StoragePath == "" {
			loaded.StoragePath = defaultStoragePath
		}
		if loaded.Port == 0 {
			loaded.Port = defaultPort
		}
		m.cfg = loaded
	})
	return m.Get()
}

func (m *ConfigManager) applyEnv() {
	if p := os.Getenv("ISOGIT_STORAGE_PATH"); p != "" {
		m.cfg.StoragePath = p
	}
	if p := os.Getenv("PORT"); p != "" {
		port, err := ParsePort(p)
		if err != nil {
			m.log.Warn("ignoring PORT", "value", p, "error", err)
			return
		}
		m.cfg.Port = port
	}
}

// Get returns a copy of the current configuration.
func (m *ConfigManager) Get() AppConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Update replaces the configuration in memory and persists it to file.
func (m *ConfigManager) Update(newConfig AppConfig) error {
	m.Load()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = newConfig
	return m.save()
}

// save expects the caller to hold mu or to be inside once.
func (m *ConfigManager) save() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0644)
}

// ParsePort converts a port argument to a number in 1..65535.
func ParsePort(s string) (int, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return int(port), nil
}
