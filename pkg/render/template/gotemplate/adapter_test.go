package gotemplate_test

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/render/template/gotemplate"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	var written strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &written)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!\n" {
		t.Fatalf("unexpected result %q", result)
	}
	if written.String() != result {
		t.Fatalf("writer mismatch: %q", written.String())
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
		"greet":    "hi",
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "staging|hi\n" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!\n" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type draft struct {
		FullName string   `json:"fullName"`
		Toppings []string `json:"toppings"`
	}
	result, err := engine.RenderTemplate("child", map[string]any{
		"order": draft{FullName: "  ann lee ", Toppings: []string{"1", "2"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("Ann lee ordered 2 toppings\n", result); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_RenderInlineContent(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b }}", struct {
		A string `json:"a"`
		B int    `json:"b"`
	}{A: "x", B: 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "x-3" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "<b>Ada</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
