package render_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-orderform/pkg/render"
)

func TestThemes_DefaultSelection(t *testing.T) {
	themes, err := render.NewThemes("", "light")
	if err != nil {
		t.Fatalf("new themes: %v", err)
	}

	selection, err := themes.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "pizza" || selection.Variant != "light" {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}

	cfg, err := themes.Config("", "dark")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Variant != "dark" {
		t.Fatalf("expected dark variant, got %s", cfg.Variant)
	}
	if cfg.CSSVars["--color-surface"] != "#1f1a17" {
		t.Fatalf("variant token not applied: %v", cfg.CSSVars)
	}
	if cfg.CSSVars["--color-brand"] != "#b3261e" {
		t.Fatalf("base token not inherited: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/orderform.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if cfg.Partials["layout"] != "layout.tpl" {
		t.Fatalf("expected layout partial, got %v", cfg.Partials)
	}
}

func TestThemes_Errors(t *testing.T) {
	if _, err := render.NewThemes("other", ""); err == nil {
		t.Fatalf("expected error for unknown default theme")
	}
	if _, err := render.NewThemes("pizza", "sepia"); err == nil {
		t.Fatalf("expected error for unknown default variant")
	}

	themes, err := render.NewThemes("pizza", "light")
	if err != nil {
		t.Fatalf("new themes: %v", err)
	}
	if _, err := themes.Select("pizza", "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := themes.Select("margherita", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestRendererConfig_VariantAssetsAndFallbacks(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			"layout": "acme/layout.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/static/acme/",
			Files:  map[string]string{"stylesheet": "acme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "acme.dark.css"},
				},
			},
		},
	}
	themes, err := render.NewThemes("acme", "", manifest)
	if err != nil {
		t.Fatalf("new themes: %v", err)
	}
	themes.WithFallbacks(map[string]string{"layout": "layout.tpl", "nav": "nav.tpl"})

	cfg, err := themes.Config("acme", "dark")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant token override missing: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if cfg.Partials["layout"] != "acme/layout.tpl" || cfg.Partials["nav"] != "nav.tpl" {
		t.Fatalf("unexpected partials %v", cfg.Partials)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/static/acme/acme.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}

	base, err := themes.Config("acme", "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if base.Variant != "" || base.Tokens["brand"] != "#123456" {
		t.Fatalf("unexpected base config %+v", base)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	want := ":root {\n  --a: 1;\n  --b: 2;\n}"
	if got != want {
		t.Fatalf("unexpected style\nwant: %q\n got: %q", want, got)
	}
	if render.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style for nil vars")
	}
	if !strings.HasPrefix(render.CSSVarsStyle(map[string]string{"--x": "y"}), ":root") {
		t.Fatalf("expected :root block")
	}
}
