// Package config loads runtime settings for the formbind binaries from
// FORMBIND_* environment variables. Command line flags override them.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting.
type Config struct {
	Addr           string        `env:"FORMBIND_ADDR" envDefault:":7860"`
	LogLevel       string        `env:"FORMBIND_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"FORMBIND_LOG_FORMAT" envDefault:"text"`
	Grace          time.Duration `env:"FORMBIND_GRACE" envDefault:"10s"`
	RateRPS        float64       `env:"FORMBIND_RATE_RPS" envDefault:"5"`
	RateBurst      int           `env:"FORMBIND_RATE_BURST" envDefault:"10"`
	// TrustedProxies is a comma separated list of CIDRs or addresses whose
	// X-Forwarded-For header the rate limiter believes.
	TrustedProxies []string      `env:"FORMBIND_TRUSTED_PROXIES" envSeparator:","`
	Locale         string        `env:"FORMBIND_LOCALE"`
	ThemeVariant   string        `env:"FORMBIND_THEME_VARIANT"`
	UISchema       string        `env:"FORMBIND_UI_SCHEMA"`
	SentryDSN      string        `env:"SENTRY_DSN"`
	SentryEnv      string        `env:"SENTRY_ENVIRONMENT" envDefault:"development"`
	SentryRelease  string        `env:"APP_VERSION" envDefault:"dev"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: FORMBIND_ADDR is empty")
	}
	if c.Grace < 0 {
		return fmt.Errorf("config: FORMBIND_GRACE must not be negative")
	}
	if c.RateRPS < 0 || c.RateBurst < 0 {
		return fmt.Errorf("config: rate limit values must not be negative")
	}
	return nil
}
