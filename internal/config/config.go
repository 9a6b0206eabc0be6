// Package config provides configuration management for the token validation service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FileConfig is the top-level wrapper for the configuration file.
// Keeping the daemon under its own table leaves room for companion tools
// to share a single config file.
type FileConfig struct {
	Pingcheckd Config `toml:"pingcheckd"`
}

// Config holds the complete service configuration.
type Config struct {
	LogLevel string         `toml:"log_level"`
	Listen   string         `toml:"listen"`
	Provider ProviderConfig `toml:"provider"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ProviderConfig holds the identity provider connection settings.
// Endpoint, ClientID, and ClientSecret are all required.
type ProviderConfig struct {
	Endpoint     string `toml:"endpoint"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Timeout      string `toml:"timeout"`
}

// MetricsConfig holds configuration for Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
	Path    string `toml:"path"`
}

// Default returns a Config with sensible default values.
// Provider credentials have no defaults; they must be supplied.
func Default() Config {
	return Config{
		LogLevel: "info",
		Listen:   ":8080",
		Provider: ProviderConfig{
			Timeout: "10s",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9100",
			Path:    "/metrics",
		},
	}
}

// Validate checks that the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}

	if strings.TrimSpace(c.Provider.Endpoint) == "" {
		return errors.New("provider endpoint URL is required")
	}

	if strings.TrimSpace(c.Provider.ClientID) == "" {
		return errors.New("provider client id is required")
	}

	if strings.TrimSpace(c.Provider.ClientSecret) == "" {
		return errors.New("provider client secret is required")
	}

	if c.Provider.Timeout != "" {
		if _, err := time.ParseDuration(c.Provider.Timeout); err != nil {
			return fmt.Errorf("invalid provider timeout: %w", err)
		}
	}

	if c.Metrics.Enabled {
		if c.Metrics.Address == "" {
			return errors.New("metrics address is required when metrics are enabled")
		}
		if c.Metrics.Path == "" {
			return errors.New("metrics path is required when metrics are enabled")
		}
	}

	return nil
}

// RequestTimeout returns the provider request timeout as a time.Duration.
// Returns 10 seconds if not configured or invalid.
func (p *ProviderConfig) RequestTimeout() time.Duration {
	if p.Timeout == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
