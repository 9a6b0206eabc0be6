package config

import (
	"flag"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Flags holds command-line flag values.
type Flags struct {
	ConfigPath   string
	LogLevel     string
	Listen       string
	Endpoint     string
	ClientID     string
	ClientSecret string
	Timeout      string
}

// ParseFlags parses command-line flags and returns a Flags struct.
func ParseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "./pingcheckd.toml", "Path to configuration file")
	flag.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&f.Listen, "listen", "", "Listen address for the validation API")
	flag.StringVar(&f.Endpoint, "endpoint", "", "Token introspection endpoint URL")
	flag.StringVar(&f.ClientID, "client-id", "", "OAuth client id for the introspection endpoint")
	flag.StringVar(&f.ClientSecret, "client-secret", "", "OAuth client secret for the introspection endpoint")
	flag.StringVar(&f.Timeout, "timeout", "", "Provider request timeout (e.g. 10s)")

	flag.Parse()
	return f
}

// Load parses a TOML configuration file and returns the Config.
// If the file does not exist, returns the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var fileConfig FileConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	// Merge file config into defaults
	cfg = mergeConfig(cfg, fileConfig.Pingcheckd)

	return cfg, nil
}

// ApplyFlags merges command-line flag values into the config.
// Non-empty flag values override config file and environment values.
func ApplyFlags(cfg Config, f *Flags) Config {
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}

	if f.Listen != "" {
		cfg.Listen = f.Listen
	}

	if f.Endpoint != "" {
		cfg.Provider.Endpoint = f.Endpoint
	}

	if f.ClientID != "" {
		cfg.Provider.ClientID = f.ClientID
	}

	if f.ClientSecret != "" {
		cfg.Provider.ClientSecret = f.ClientSecret
	}

	if f.Timeout != "" {
		cfg.Provider.Timeout = f.Timeout
	}

	return cfg
}

// LoadWithFlags loads configuration from the path specified in flags,
// applies environment overrides, then applies flag overrides.
func LoadWithFlags(f *Flags) (Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}
	cfg, err = ApplyEnv(cfg)
	if err != nil {
		return cfg, err
	}
	return ApplyFlags(cfg, f), nil
}

// mergeConfig merges non-zero values from src into dst.
func mergeConfig(dst, src Config) Config {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}

	if src.Listen != "" {
		dst.Listen = src.Listen
	}

	if src.Provider.Endpoint != "" {
		dst.Provider.Endpoint = src.Provider.Endpoint
	}

	if src.Provider.ClientID != "" {
		dst.Provider.ClientID = src.Provider.ClientID
	}

	if src.Provider.ClientSecret != "" {
		dst.Provider.ClientSecret = src.Provider.ClientSecret
	}

	if src.Provider.Timeout != "" {
		dst.Provider.Timeout = src.Provider.Timeout
	}

	// Metrics: enabled is explicitly set (boolean), so we merge if source has any non-zero value
	if src.Metrics.Enabled {
		dst.Metrics.Enabled = src.Metrics.Enabled
	}

	if src.Metrics.Address != "" {
		dst.Metrics.Address = src.Metrics.Address
	}

	if src.Metrics.Path != "" {
		dst.Metrics.Path = src.Metrics.Path
	}

	return dst
}
