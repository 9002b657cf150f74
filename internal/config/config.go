// Package config loads the YAML runtime configuration with environment
// overrides for secrets. A vendor block without its credential is
// treated as disabled rather than an error, so a bare config still runs
// with the keyless vendors.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Providers ProvidersConfig `yaml:"providers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

type HTTPConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

type DatabaseConfig struct {
	URL           string `yaml:"url"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type ProvidersConfig struct {
	Yahoo        ProviderConfig `yaml:"yahoo"`
	AlphaVantage ProviderConfig `yaml:"alphavantage"`
	TwelveData   ProviderConfig `yaml:"twelvedata"`
	Tradegate    ProviderConfig `yaml:"tradegate"`
}

type ProviderConfig struct {
	Enabled               bool   `yaml:"enabled"`
	Endpoint              string `yaml:"endpoint"`
	APIKey                string `yaml:"api_key"`
	MinRequestIntervalSec int    `yaml:"min_request_interval_sec"`
}

// Default returns the configuration used when no file is given: keyless
// vendors on, keyed vendors off until a credential appears.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text", Output: "stdout", MaxAge: 7},
		HTTP:    HTTPConfig{TimeoutSec: 10},
		Database: DatabaseConfig{
			MigrationsDir: "migrations",
		},
		Providers: ProvidersConfig{
			Yahoo:        ProviderConfig{Enabled: true, MinRequestIntervalSec: 1},
			AlphaVantage: ProviderConfig{Enabled: true, MinRequestIntervalSec: 12},
			TwelveData:   ProviderConfig{Enabled: true, MinRequestIntervalSec: 8},
			Tradegate:    ProviderConfig{Enabled: true, MinRequestIntervalSec: 1},
		},
	}
}

// Load reads path (optional) over the defaults, then applies environment
// overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.Providers.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		c.Providers.TwelveData.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects configurations that cannot run at all. Vendors
// missing credentials are silently disabled instead.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.HTTP.TimeoutSec <= 0 {
		return fmt.Errorf("http.timeout_sec must be positive, got %d", c.HTTP.TimeoutSec)
	}
	// Keyed vendors are only usable with a credential.
	if c.Providers.AlphaVantage.APIKey == "" {
		c.Providers.AlphaVantage.Enabled = false
	}
	if c.Providers.TwelveData.APIKey == "" {
		c.Providers.TwelveData.Enabled = false
	}
	if !c.Providers.Yahoo.Enabled && !c.Providers.AlphaVantage.Enabled &&
		!c.Providers.TwelveData.Enabled && !c.Providers.Tradegate.Enabled {
		return fmt.Errorf("no providers enabled")
	}
	return nil
}
