package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7860" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Grace != 10*time.Second {
		t.Fatalf("expected default grace, got %s", cfg.Grace)
	}
	if cfg.RateRPS != 5 || cfg.RateBurst != 10 {
		t.Fatalf("unexpected rate defaults %v/%d", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FORMBIND_ADDR", "127.0.0.1:9000")
	t.Setenv("FORMBIND_GRACE", "2s")
	t.Setenv("FORMBIND_LOCALE", "de")
	t.Setenv("FORMBIND_THEME_VARIANT", "dark")
	t.Setenv("SENTRY_DSN", "https://key@example.com/1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Grace != 2*time.Second || cfg.Locale != "de" || cfg.ThemeVariant != "dark" {
		t.Fatalf("overrides not applied: %#v", cfg)
	}
	if cfg.SentryDSN == "" {
		t.Fatalf("expected sentry dsn")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("FORMBIND_RATE_BURST", "many")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Config{
		"empty addr":     {Addr: ""},
		"negative grace": {Addr: ":1", Grace: -time.Second},
		"negative rate":  {Addr: ":1", RateRPS: -1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("FORMBIND_TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" || cfg.TrustedProxies[1] != "192.168.1.1" {
		t.Fatalf("unexpected trusted proxies %#v", cfg.TrustedProxies)
	}
}
