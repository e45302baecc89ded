package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SaveConfig saves configuration to a YAML file on fs
func SaveConfig(fs afero.Fs, cfg *Config, configPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := fs.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	return afero.WriteFile(fs, configPath, data, 0644)
}

// WriteDefault writes the default configuration to configPath. An existing
// file is left alone unless force is set.
func WriteDefault(fs afero.Fs, configPath string, force bool) error {
	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("config file %s already exists: %w", configPath, os.ErrExist)
	}
	return SaveConfig(fs, Default(), configPath)
}
