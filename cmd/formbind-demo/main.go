package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/internal/observability"
	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/demos"
	"github.com/goliatone/go-formbind/pkg/openapi"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
	"github.com/goliatone/go-formbind/pkg/server"
	"github.com/goliatone/go-formbind/pkg/uischema"
)

type options struct {
	demo, mode, addr, ui, locale, variant string
	binding, format, output, renderer     string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var opts options
	flag.StringVar(&opts.demo, "demo", "hello", "demo to run ("+strings.Join(demos.Names(), ", ")+")")
	flag.StringVar(&opts.mode, "mode", "web", "web, tui, html or openapi")
	flag.StringVar(&opts.addr, "addr", cfg.Addr, "listen address in web mode")
	flag.StringVar(&opts.ui, "ui", cfg.UISchema, `UI overlay file, or "embedded" for the bundled English labels`)
	flag.StringVar(&opts.locale, "locale", cfg.Locale, "number formatting locale (empty negotiates per request)")
	flag.StringVar(&opts.variant, "theme", cfg.ThemeVariant, "theme variant (light, dark)")
	flag.StringVar(&opts.binding, "binding", "", "binding to run in tui mode (asks when empty)")
	flag.StringVar(&opts.format, "format", string(tui.OutputFormatPrettyText), "tui output format (pretty, json, yaml)")
	flag.StringVar(&opts.output, "output", "", "html or openapi output file (stdout if empty)")
	flag.StringVar(&opts.renderer, "renderer", "vanilla", "renderer used in html mode (vanilla, tui)")
	flag.Parse()

	logger := observability.NewLogger(observability.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	flush := observability.InitSentry(observability.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnv,
		Release:     cfg.SentryRelease,
	}, logger)

	err = run(context.Background(), cfg, opts, logger)
	// log.Fatalf and os.Exit skip deferred calls.
	flush()
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted):
		os.Exit(1)
	default:
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	a, err := buildApp(opts.demo, opts.ui)
	if err != nil {
		return fmt.Errorf("build demo: %w", err)
	}

	switch opts.mode {
	case "web":
		themeCfg, err := render.ResolveTheme(nil, opts.variant)
		if err != nil {
			return fmt.Errorf("resolve theme: %w", err)
		}
		trusted, err := server.ParseTrustedProxies(cfg.TrustedProxies)
		if err != nil {
			return err
		}
		err = server.Launch(ctx, a,
			server.WithLogger(logger),
			server.WithAddr(opts.addr),
			server.WithGrace(cfg.Grace),
			server.WithTheme(themeCfg),
			server.WithLocale(opts.locale),
			server.WithRateLimit(server.RateLimitConfig{
				RequestsPerSecond: cfg.RateRPS,
				Burst:             cfg.RateBurst,
				TrustedProxies:    trusted,
			}),
			server.WithOpenAPIOptions(openapi.WithVersion(cfg.SentryRelease)),
		)
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
	case "tui":
		runner, err := tui.NewRunner(a,
			tui.WithLocale(opts.locale),
			tui.WithOutputFormat(tui.OutputFormat(opts.format)),
		)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		if _, err := runner.Run(ctx, opts.binding); err != nil {
			return fmt.Errorf("session failed: %w", err)
		}
	case "html":
		selector, err := render.NewManifestSelector(opts.variant)
		if err != nil {
			return fmt.Errorf("resolve theme: %w", err)
		}
		gen := orchestrator.New(orchestrator.WithThemeSelector(selector))
		page, err := gen.Generate(ctx, orchestrator.Request{
			App:           a,
			Renderer:      opts.renderer,
			RenderOptions: render.RenderOptions{Locale: opts.locale},
		})
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		return writeOutput(opts.output, page)
	case "openapi":
		doc, err := openapi.Build(ctx, a, openapi.WithVersion(cfg.SentryRelease))
		if err != nil {
			return fmt.Errorf("build OpenAPI document: %w", err)
		}
		return writeOutput(opts.output, doc.Raw())
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Output written to %s\n", path)
	return nil
}

func buildApp(name, overlay string) (*app.App, error) {
	factory, ok := demos.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown demo %q", name)
	}
	a, err := factory()
	if err != nil {
		return nil, err
	}
	if overlay == "" {
		return a, nil
	}

	var store *uischema.Store
	if overlay == "embedded" {
		store, err = uischema.LoadFS(uischema.EmbeddedFS())
	} else {
		store, err = uischema.LoadFile(overlay)
	}
	if err != nil {
		return nil, err
	}
	if err := a.Decorate(uischema.NewDecorator(store, name)); err != nil {
		return nil, err
	}
	return a, nil
}
