// Package config loads the skillet configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "skillet.yaml"

// Provider configures the completion service.
type Provider struct {
	// Endpoint is the base URL of an OpenAI-compatible API.
	Endpoint string `yaml:"endpoint"`

	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in the config file.
	APIKeyEnv string `yaml:"api_key_env"`

	Model       string   `yaml:"model"`
	Temperature *float64 `yaml:"temperature"`

	// Timeout is a duration string such as "30s".
	Timeout string `yaml:"timeout"`
}

// TimeoutDuration parses the configured request timeout. Zero means the
// client default applies.
func (p Provider) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(p.Timeout); err == nil {
		return d
	}
	return 0
}

// Redis configures the durable favorites book. An empty Addr disables it.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Log configures the application logger.
type Log struct {
	Level string `yaml:"level"`
}

// Config is the full application configuration.
type Config struct {
	Provider Provider `yaml:"provider"`
	Redis    Redis    `yaml:"redis"`
	Log      Log      `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Provider: Provider{
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the configuration file at path, layered over the defaults.
// A missing file at the default path is not an error; a missing file at an
// explicitly requested path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// APIKey resolves the completion service API key from the environment.
func (p Provider) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}
