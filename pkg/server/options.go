package server

import (
	"log/slog"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/render"
)

const (
	defaultAddr  = ":7860"
	defaultGrace = 10 * time.Second

	// EventPrefix routes form submissions; the suffix is the binding ID.
	EventPrefix = "/events/"
	// APIPrefix routes JSON invocations from the browser script.
	APIPrefix = "/api/events/"
	// AssetPrefix serves the embedded stylesheet and script.
	AssetPrefix = "/assets/"
	// PagePath serves the page; relative links such as Clear resolve here.
	PagePath = "/"
)

// Option configures a Server.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	renderer render.Renderer
	theme    *theme.RendererConfig
	locale   string
	rate     RateLimitConfig
	addr     string
	grace    time.Duration
	openapi  []openapi.Option
}

func defaultConfig() config {
	return config{
		addr:  defaultAddr,
		grace: defaultGrace,
		rate:  RateLimitConfig{RequestsPerSecond: 5, Burst: 10},
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRenderer replaces the HTML renderer. It must produce a page that posts
// to EventPrefix.
func WithRenderer(renderer render.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.renderer = renderer
		}
	}
}

// WithTheme sets the resolved theme passed to the renderer.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithLocale pins the number formatting locale. Empty negotiates it from
// the Accept-Language header.
func WithLocale(locale string) Option {
	return func(cfg *config) {
		cfg.locale = locale
	}
}

// WithRateLimit configures the limiter on event routes. A zero config
// disables it.
func WithRateLimit(rate RateLimitConfig) Option {
	return func(cfg *config) {
		cfg.rate = rate
	}
}

// WithAddr sets the listen address used by Launch.
func WithAddr(addr string) Option {
	return func(cfg *config) {
		if addr != "" {
			cfg.addr = addr
		}
	}
}

// WithGrace bounds how long shutdown waits for in-flight requests.
func WithGrace(grace time.Duration) Option {
	return func(cfg *config) {
		if grace > 0 {
			cfg.grace = grace
		}
	}
}

// WithOpenAPIOptions forwards options to the document served at
// /openapi.json.
func WithOpenAPIOptions(options ...openapi.Option) Option {
	return func(cfg *config) {
		cfg.openapi = append(cfg.openapi, options...)
	}
}
