// Package config handles configuration for the harness.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the harness configuration (harness.yaml).
type Config struct {
	// Device settings
	Platform  string `yaml:"platform"`  // Target platform (android, ios)
	ServerURL string `yaml:"serverUrl"` // Appium server URL

	// Locators is the path to the locator table. Empty means the
	// built-in table.
	Locators string `yaml:"locators"`

	// LogFile receives harness logs. Empty means stderr.
	LogFile string `yaml:"logFile"`

	// Capabilities are merged over the platform defaults at session
	// creation (device name, app path, vendor settings).
	Capabilities map[string]interface{} `yaml:"capabilities"`
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for harness.yaml or harness.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "harness.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	configPath = filepath.Join(dir, "harness.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}
