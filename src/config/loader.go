package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variables that override file configuration. Secrets come
// from the environment in deployments rather than the config file.
const (
	envAPIKey         = "TASKCHAT_API_KEY"
	envJWTSecret      = "TASKCHAT_JWT_SECRET"
	envTaskServiceURL = "TASKCHAT_TASK_SERVICE_URL"
	envServerAddr     = "TASKCHAT_ADDR"
)

// DefaultConfigPath returns the XDG location of the user config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "taskchat", "config.json")
}

// Load reads configuration from the given path (or the default XDG path if
// empty), applies environment overrides, and validates the result. A
// missing file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvironmentOverrides(config)

	if err := NewValidator().Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnvironmentOverrides applies environment variable overrides
func applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv(envAPIKey); v != "" {
		config.API.APIKey = v
	}
	if v := os.Getenv(envJWTSecret); v != "" {
		config.Server.JWTSecret = v
	}
	if v := os.Getenv(envTaskServiceURL); v != "" {
		config.TaskService.BaseURL = v
	}
	if v := os.Getenv(envServerAddr); v != "" {
		config.Server.Addr = v
	}
}
