package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const (
	userConfigDir  = ".config/ephemera"
	configFileName = "config.yaml"
)

// LoadConfig loads config.yaml from configPath on top of the defaults. A
// missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Debug("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// Load resolves the effective configuration: file (from configPath, or the
// user config directory when empty), then environment, then defaults for
// anything still unset.
func Load(configPath string) (Config, error) {
	if configPath == "" {
		dir, err := GetUserConfigDir()
		if err != nil {
			return Config{}, err
		}
		configPath = dir
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Config{}, err
	}
	cfg, err = cfg.ApplyEnv()
	if err != nil {
		return Config{}, err
	}
	return cfg.Normalize(), nil
}
