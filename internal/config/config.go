// Package config loads server settings from defaults, an optional YAML file,
// a .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable holding the YAML config path.
const FileEnv = "TIPSPLIT_CONFIG"

// Config holds all application configuration
type Config struct {
	Port              int    `yaml:"port"`
	LogLevel          string `yaml:"log_level"`
	MaxTipPercent     int    `yaml:"max_tip_percent"`
	DefaultTipPercent int    `yaml:"default_tip_percent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:              8080,
		LogLevel:          "info",
		MaxTipPercent:     100,
		DefaultTipPercent: 15,
	}
}

// Load reads configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		slog.Debug("Config file loaded", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"MAX_TIP_PERCENT", &c.MaxTipPercent},
		{"DEFAULT_TIP_PERCENT", &c.DefaultTipPercent},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", v.key, raw, err)
		}
		*v.dst = n
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxTipPercent <= 0 {
		return fmt.Errorf("max tip percent must be positive, got %d", c.MaxTipPercent)
	}
	if c.DefaultTipPercent < 0 || c.DefaultTipPercent > c.MaxTipPercent {
		return fmt.Errorf("default tip percent %d not in [0, %d]", c.DefaultTipPercent, c.MaxTipPercent)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
