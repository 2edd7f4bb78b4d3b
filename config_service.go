package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"deckforge/config"
)

// ConfigProvider exposes read access to the stored configuration.
type ConfigProvider interface {
	GetConfig() (config.Config, error)
}

// ConfigPersister exposes write access to the stored configuration.
type ConfigPersister interface {
	SaveConfig(cfg config.Config) error
}

// ConfigService owns the on-disk configuration file. Implements
// Service, ConfigProvider and ConfigPersister.
type ConfigService struct {
	storageDir string
	logger     func(string)
	callbacks  []func(config.Config)
	mu         sync.RWMutex
}

// NewConfigService creates a new ConfigService instance
func NewConfigService(logger func(string)) *ConfigService {
	return &ConfigService{
		logger:    logger,
		callbacks: make([]func(config.Config), 0),
	}
}

// Name returns the service name
func (cs *ConfigService) Name() string {
	return "config"
}

// Initialize ensures the storage directory exists
func (cs *ConfigService) Initialize(ctx context.Context) error {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return WrapError("config", "Initialize", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return WrapError("config", "Initialize", fmt.Errorf("failed to create storage dir: %w", err))
	}
	cs.log(fmt.Sprintf("ConfigService initialized, storage dir: %s", dir))
	return nil
}

// Shutdown closes the config service (no-op)
func (cs *ConfigService) Shutdown() error {
	return nil
}

// GetStorageDir returns the storage directory path (~/DeckForge)
func (cs *ConfigService) GetStorageDir() (string, error) {
	cs.mu.RLock()
	sd := cs.storageDir
	cs.mu.RUnlock()

	if sd != "" {
		return sd, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", WrapError("config", "GetStorageDir", err)
	}
	return filepath.Join(home, "DeckForge"), nil
}

// SetStorageDir overrides the storage directory (mainly for tests)
func (cs *ConfigService) SetStorageDir(dir string) {
	cs.mu.Lock()
	cs.storageDir = dir
	cs.mu.Unlock()
}

// GetConfigPath returns the config file path
func (cs *ConfigService) GetConfigPath() (string, error) {
	dir, err := cs.GetStorageDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfig loads the configuration from disk, supplying defaults for
// a missing file.
func (cs *ConfigService) GetConfig() (config.Config, error) {
	path, err := cs.GetConfigPath()
	if err != nil {
		return config.Config{}, err
	}

	dir, _ := cs.GetStorageDir()
	defaultCfg := config.Config{
		LLMProvider: "OpenAI",
		ModelName:   "gpt-4o-mini",
		DataDir:     dir,
		ExportDir:   filepath.Join(dir, "exports"),
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return defaultCfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, WrapError("config", "GetConfig", err)
	}

	cfg := defaultCfg
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config.Config{}, WrapError("config", "GetConfig", fmt.Errorf("failed to parse config file: %w", err))
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultCfg.DataDir
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = defaultCfg.ExportDir
	}
	return cfg, nil
}

// SaveConfig writes the configuration to disk and notifies listeners.
func (cs *ConfigService) SaveConfig(cfg config.Config) error {
	path, err := cs.GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return WrapError("config", "SaveConfig", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapError("config", "SaveConfig", err)
	}

	cs.mu.RLock()
	callbacks := make([]func(config.Config), len(cs.callbacks))
	copy(callbacks, cs.callbacks)
	cs.mu.RUnlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	return nil
}

// OnConfigChanged registers a callback invoked after each save.
func (cs *ConfigService) OnConfigChanged(callback func(config.Config)) {
	cs.mu.Lock()
	cs.callbacks = append(cs.callbacks, callback)
	cs.mu.Unlock()
}

func (cs *ConfigService) log(msg string) {
	if cs.logger != nil {
		cs.logger(msg)
	}
}
