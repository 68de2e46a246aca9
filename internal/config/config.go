// Package config loads the optional vaultkeep YAML config file: the
// default vault path, the Argon2id cost profile to use on create, and the
// logging format. Every field has a working default, so a missing config
// file is not an error.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of vaultkeep's optional config file.
type Config struct {
	VaultPath  string    `yaml:"vault_path"`
	KDFProfile string    `yaml:"kdf_profile"`
	Logging    LogConfig `yaml:"logging"`
}

// LogConfig controls the logrus setup built in internal/logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration vaultkeep runs with when no config
// file is present or named on the command line.
func Default() *Config {
	return &Config{
		VaultPath:  "vault.bin",
		KDFProfile: "interactive",
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads and validates the config file at path. A missing file is not
// an error: Default() is returned instead, since every vaultkeep setting
// has a sane built-in value and the config file exists only to override
// them.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that have no corresponding behavior.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.VaultPath) == "" {
		return fmt.Errorf("config.vault_path must not be empty")
	}
	switch c.KDFProfile {
	case "interactive", "moderate":
	default:
		return fmt.Errorf("config.kdf_profile must be %q or %q, got %q", "interactive", "moderate", c.KDFProfile)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config.logging.format must be %q or %q, got %q", "text", "json", c.Logging.Format)
	}
	return nil
}
