package formbind

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/server"
)

// RenderOptions describes per-request values, errors and locale that
// renderers use to show page state.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the page of a with the named renderer ("vanilla" when
// empty). It is the simplest entry point for callers that just want output
// without running a server.
func GenerateHTML(ctx context.Context, a *app.App, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		App:      a,
		Renderer: rendererName,
	})
}

// Launch serves a over HTTP until ctx is cancelled or the process is
// interrupted.
func Launch(ctx context.Context, a *app.App, options ...server.Option) error {
	return server.Launch(ctx, a, options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeVariant selects a variant of the built-in theme.
func WithThemeVariant(variant string) orchestrator.Option {
	selector, err := render.NewManifestSelector(variant)
	if err != nil {
		return nil
	}
	return orchestrator.WithThemeSelector(selector)
}
