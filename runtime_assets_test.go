package formbind

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/demos"
)

func TestRuntimeAssetsFSContainsScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), "formbind.js")
	if err != nil {
		t.Fatalf("expected script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "data-api-prefix") {
		t.Fatalf("expected script to read the API prefix from the form")
	}
	if !strings.Contains(string(data), "body.display[id]") {
		t.Fatalf("expected script to show locale-formatted output values")
	}
}

func TestEmbeddedTemplatesContainsPage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestGenerateHTML_DarkVariant(t *testing.T) {
	a, err := demos.Hello()
	if err != nil {
		t.Fatalf("build demo: %v", err)
	}
	out, err := GenerateHTML(context.Background(), a, "", WithThemeVariant("dark"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `data-theme="dark"`) {
		t.Fatalf("expected dark theme marker in output")
	}
}
