package render_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/render"
)

func TestResolveTheme_DarkVariantOverridesTokens(t *testing.T) {
	cfg, err := render.ResolveTheme(nil, "dark")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	if cfg.Theme != render.DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--color-bg"] != "#0b0f19" {
		t.Fatalf("expected dark background, got %q", cfg.CSSVars["--color-bg"])
	}
	if cfg.CSSVars["--color-primary"] != "#f97316" {
		t.Fatalf("expected base primary colour to survive, got %q", cfg.CSSVars["--color-primary"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/formbind.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestResolveTheme_UnknownVariant(t *testing.T) {
	if _, err := render.ResolveTheme(nil, "sepia"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestThemeFromSelection_VariantAssets(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#123456"},
		Assets: theme.Assets{
			Prefix: "/static/acme/",
			Files:  map[string]string{"stylesheet": "acme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{Files: map[string]string{"stylesheet": "acme.dark.css"}},
			},
		},
	}

	cfg := render.ThemeFromSelection(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("variant token not applied: %q", cfg.Tokens["brand"])
	}
	if got := cfg.AssetURL("stylesheet"); got != "/static/acme/acme.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}

	style := render.CSSVarsStyle(cfg)
	if !strings.Contains(style, "--brand: #654321;") {
		t.Fatalf("expected css variable in style, got %q", style)
	}
}

func TestManifestSelector(t *testing.T) {
	acme := &theme.Manifest{
		Name:     "acme",
		Tokens:   map[string]string{"brand": "#123456"},
		Variants: map[string]theme.Variant{"dark": {Tokens: map[string]string{"brand": "#654321"}}},
	}
	selector, err := render.NewManifestSelector("dark", render.DefaultManifest(), acme)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select defaults: %v", err)
	}
	if selection.Theme != render.DefaultThemeName || selection.Variant != "dark" {
		t.Fatalf("unexpected default selection %s/%s", selection.Theme, selection.Variant)
	}

	selection, err = selector.Select("acme", "dark")
	if err != nil {
		t.Fatalf("select acme: %v", err)
	}
	if cfg := render.ThemeFromSelection(selection); cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("unexpected brand %q", cfg.CSSVars["--brand"])
	}

	if _, err := selector.Select("nope", ""); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if _, err := selector.Select("acme", "sepia"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if _, err := render.NewManifestSelector("", acme, acme); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
