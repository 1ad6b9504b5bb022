// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

// Package config loads server configuration from an optional YAML file and
// command-line flags, flags taking precedence.
package config

import (
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/boardkit/modlog/internal/modlog"
)

// Config holds all configuration for the modlog server.
type Config struct {
	DatabaseURL string `koanf:"database_url"`
	MetricsAddr string `koanf:"metrics_addr"`
	LogFormat   string `koanf:"log_format"`
	LogLevel    string `koanf:"log_level"`

	Retention Retention `koanf:"retention"`
}

// Retention holds the partition maintenance policy.
type Retention struct {
	RetainDays   int  `koanf:"retain_days"`
	GraceDays    int  `koanf:"grace_days"`
	CycleHours   int  `koanf:"cycle_hours"`
	FutureMonths int  `koanf:"future_months"`
	Enabled      bool `koanf:"enabled"`
}

// Default values for non-secret configuration.
const (
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
	DefaultLogLevel    = "info"
)

// Default returns a Config populated with defaults.
func Default() Config {
	retention := modlog.DefaultRetentionConfig()
	return Config{
		MetricsAddr: DefaultMetricsAddr,
		LogFormat:   DefaultLogFormat,
		LogLevel:    DefaultLogLevel,
		Retention: Retention{
			RetainDays:   int(retention.RetainFor / (24 * time.Hour)),
			GraceDays:    int(retention.GracePeriod / (24 * time.Hour)),
			CycleHours:   int(retention.CycleInterval / time.Hour),
			FutureMonths: retention.FutureMonths,
			Enabled:      true,
		},
	}
}

// Load reads configuration from an optional YAML file and the given flag
// set. Flags set explicitly override file values, which override defaults.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").With("path", configFile).Wrap(err)
		}
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database_url is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}
	if c.Retention.RetainDays <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("retention.retain_days must be positive")
	}
	if c.Retention.GraceDays < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("retention.grace_days cannot be negative")
	}
	if c.Retention.CycleHours <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("retention.cycle_hours must be positive")
	}
	return nil
}

// RetentionConfig converts the configured policy to the worker's form.
func (c *Config) RetentionConfig() modlog.RetentionConfig {
	return modlog.RetentionConfig{
		RetainFor:     time.Duration(c.Retention.RetainDays) * 24 * time.Hour,
		GracePeriod:   time.Duration(c.Retention.GraceDays) * 24 * time.Hour,
		CycleInterval: time.Duration(c.Retention.CycleHours) * time.Hour,
		FutureMonths:  c.Retention.FutureMonths,
	}
}
