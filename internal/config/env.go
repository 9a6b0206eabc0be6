package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joeshaw/envdecode"
)

// envOverrides mirrors the configuration fields that may be supplied through
// the environment. Values are only applied when the variable is set.
type envOverrides struct {
	LogLevel     string `env:"PINGCHECKD_LOG_LEVEL"`
	Listen       string `env:"PINGCHECKD_LISTEN"`
	Endpoint     string `env:"PINGCHECKD_PROVIDER_ENDPOINT"`
	ClientID     string `env:"PINGCHECKD_CLIENT_ID"`
	ClientSecret string `env:"PINGCHECKD_CLIENT_SECRET"`
	Timeout      string `env:"PINGCHECKD_PROVIDER_TIMEOUT"`

	// Booleans are carried as strings so an unset variable is
	// distinguishable from an explicit "false".
	MetricsEnabled string `env:"PINGCHECKD_METRICS_ENABLED"`
	MetricsAddress string `env:"PINGCHECKD_METRICS_ADDRESS"`
	MetricsPath    string `env:"PINGCHECKD_METRICS_PATH"`
}

// ApplyEnv applies environment variable overrides to the configuration.
// Environment variables take precedence over the TOML config but are
// overridden by command-line flags.
func ApplyEnv(cfg Config) (Config, error) {
	var o envOverrides
	if err := envdecode.Decode(&o); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("decoding environment: %w", err)
	}

	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Listen != "" {
		cfg.Listen = o.Listen
	}
	if o.Endpoint != "" {
		cfg.Provider.Endpoint = o.Endpoint
	}
	if o.ClientID != "" {
		cfg.Provider.ClientID = o.ClientID
	}
	if o.ClientSecret != "" {
		cfg.Provider.ClientSecret = o.ClientSecret
	}
	if o.Timeout != "" {
		cfg.Provider.Timeout = o.Timeout
	}
	if o.MetricsEnabled != "" {
		enabled, err := strconv.ParseBool(o.MetricsEnabled)
		if err != nil {
			return cfg, fmt.Errorf("invalid PINGCHECKD_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	if o.MetricsAddress != "" {
		cfg.Metrics.Address = o.MetricsAddress
	}
	if o.MetricsPath != "" {
		cfg.Metrics.Path = o.MetricsPath
	}

	return cfg, nil
}
