package vanilla

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/render"
	rendertemplate "github.com/goliatone/go-formbind/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbind/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

const (
	defaultEventPrefix = "/events/"
	defaultAPIPrefix   = "/api/events/"
	defaultAssetPrefix = "/assets/"
	pageTemplate       = "templates/page.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the component registry used for field controls.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgets replaces the registry that picks a component per field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// Renderer produces a complete HTML page for an app. Every button posts the
// whole form to its binding, so pages work without JavaScript; the embedded
// script upgrades submissions and change events to JSON calls.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	widgets    *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(map[string]any{
				"markdown": gotemplate.FilterFunc(markdownFilter),
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	} else {
		// Custom engines may already carry the filter.
		if err := renderer.RegisterFilter("markdown", markdownFilter); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
			return nil, fmt.Errorf("vanilla renderer: register markdown filter: %w", err)
		}
	}

	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	return &Renderer{
		templates:  renderer,
		components: cfg.components,
		widgets:    cfg.widgets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg := opts.Theme
	if themeCfg == nil {
		resolved, err := render.ResolveTheme(nil, "")
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: resolve theme: %w", err)
		}
		themeCfg = resolved
	}

	eventPrefix := opts.EventPrefix
	if eventPrefix == "" {
		eventPrefix = defaultEventPrefix
	}
	apiPrefix := opts.APIPrefix
	if apiPrefix == "" {
		apiPrefix = defaultAPIPrefix
	}

	layout := &layoutRenderer{
		page:        page,
		opts:        opts,
		fields:      newComponentRenderer(r.templates, r.components, r.widgets, themeCfg.Partials),
		eventPrefix: eventPrefix,
	}
	body, err := layout.render()
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render layout: %w", err)
	}

	events := page.Events
	if events == nil {
		events = []model.Event{}
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: encode events: %w", err)
	}

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"lang": languageOf(opts.Locale),
		"page": map[string]any{
			"title":       page.Title,
			"description": page.Description,
		},
		"theme": map[string]any{
			"variant":  themeCfg.Variant,
			"css_vars": render.CSSVarsStyle(themeCfg),
		},
		"assets": map[string]any{
			"stylesheet": assetURL(opts, themeCfg.AssetURL, "stylesheet", StylesheetName),
			"script":     assetURL(opts, themeCfg.AssetURL, "script", ScriptName),
		},
		"classes": map[string]any{
			"body":   string(ClassBody),
			"app":    string(ClassApp),
			"header": string(ClassHeader),
			"form":   string(ClassForm),
			"errors": string(ClassErrors),
		},
		"status": opts.Status,
		"form": map[string]any{
			"action":     layout.defaultAction(),
			"api_prefix": apiPrefix,
			"errors":     render.MergeFormErrors(opts.FormErrors),
		},
		"body":        body,
		"events_json": string(eventsJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func assetURL(opts render.RenderOptions, resolve func(string) string, key, file string) string {
	if opts.AssetPrefix != "" {
		return joinURL(opts.AssetPrefix, file)
	}
	if resolve != nil {
		if url := resolve(key); url != "" {
			return url
		}
	}
	return defaultAssetPrefix + file
}
