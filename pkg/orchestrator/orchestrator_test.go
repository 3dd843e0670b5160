package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/demos"
	"github.com/goliatone/go-formbind/pkg/model"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/testsupport"
	"github.com/goliatone/go-formbind/pkg/uischema"
)

type captureRenderer struct {
	page    model.Page
	options render.RenderOptions
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	r.page = page
	r.options = opts
	return []byte(page.Title), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, nil
}

func TestGenerate_DefaultRendererProducesHTML(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	out, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{App: a})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `formaction="/events/greet"`) {
		t.Fatalf("expected vanilla html, got:\n%s", out)
	}

	text, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{App: a, Renderer: "tui"})
	if err != nil {
		t.Fatalf("generate tui: %v", err)
	}
	if !strings.HasPrefix(string(text), "Hello World mit Gradio\n") {
		t.Fatalf("unexpected tui output:\n%s", text)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	if _, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{App: a, Renderer: "pdf"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestGenerate_DecoratesACopy(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(capture.Name()),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, page *model.Page) error {
			page.Description = "transformed"
			return nil
		})),
		orchestrator.WithUISchemaFS(uischema.EmbeddedFS()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{App: a, Name: "hello"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if capture.page.Title != "Hello World" {
		t.Fatalf("overlay not applied, title %q", capture.page.Title)
	}
	if field, _ := capture.page.Field("name-eingeben"); field.Label != "Your name" {
		t.Fatalf("overlay label not applied: %q", field.Label)
	}
	if capture.page.Description == "transformed" {
		t.Fatalf("overlay should run after the transformer and replace the description")
	}
	if a.Page().Title != "Hello World mit Gradio" {
		t.Fatalf("app page was mutated: %q", a.Page().Title)
	}
}

func TestGenerate_ThemeSelector(t *testing.T) {
	a := testsupport.MustBuild(t, demos.Hello)
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: &theme.Manifest{Name: "acme", Tokens: map[string]string{"brand": "#123456"}},
	}}
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(capture.Name()),
		orchestrator.WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{App: a, ThemeName: "acme", ThemeVariant: "dark"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls %+v", selector.calls)
	}
	cfg := capture.options.Theme
	if cfg == nil || cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("theme config not passed to renderer: %+v", cfg)
	}
}

func TestGenerate_RequiresApp(t *testing.T) {
	if _, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without app")
	}
}
