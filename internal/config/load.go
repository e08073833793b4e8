package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrVersionMismatch is returned when a configuration's version does not
// equal SupportedVersion. No side effect happens after this error.
var ErrVersionMismatch = errors.New("configuration version mismatch")

// Load reads and parses the configuration from a YAML file, then validates it.
func Load(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// FindConfigFile returns the default config file if it exists in the working
// directory, or an empty string.
func FindConfigFile() string {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// CheckVersion verifies the configuration schema version. This runs before
// anything else so that an incompatible configuration cannot cause even one
// remote call.
func (c *Config) CheckVersion() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("%w: config has %q, this build supports %q",
			ErrVersionMismatch, c.Version, SupportedVersion)
	}
	return nil
}
