// Package vanilla renders order form pages as server-side HTML with no
// client framework. The only script disables the submit button once the form
// is posted.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-orderform/pkg/render"
	rendertemplate "github.com/goliatone/go-orderform/pkg/render/template"
	gotemplate "github.com/goliatone/go-orderform/pkg/render/template/gotemplate"
)

// Template names, overridable through theme partials with the same keys.
const (
	PartialLanding = "landing"
	PartialOrder   = "order"

	defaultLandingTemplate = "home.tpl"
	defaultOrderTemplate   = "order.tpl"

	defaultSubmitLabel = "Submit Order"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	classes          Classes
	submitLabel      string
	heading          string
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

// WithClasses overrides chrome CSS classes.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithHeading sets the order form heading. Defaults to the page title.
func WithHeading(heading string) Option {
	return func(cfg *config) {
		cfg.heading = heading
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	classes     Classes
	submitLabel string
	heading     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{submitLabel: defaultSubmitLabel}
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
			gotemplate.WithName("vanilla"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		classes:     cfg.classes.withDefaults(),
		submitLabel: cfg.submitLabel,
		heading:     cfg.heading,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := map[string]any{
		"page":         page,
		"classes":      r.classes,
		"theme":        themeData(options),
		"hiddenFields": render.SortedHiddenFields(options.HiddenFields),
		"submitLabel":  r.submitLabel,
	}

	var name string
	switch page.View {
	case render.ViewLanding:
		if page.Landing == nil {
			return nil, fmt.Errorf("vanilla renderer: landing page without body")
		}
		name = partial(options, PartialLanding, defaultLandingTemplate)
	case render.ViewOrder:
		if page.Order == nil {
			return nil, fmt.Errorf("vanilla renderer: order page without form")
		}
		heading := r.heading
		if heading == "" {
			heading = page.Title
		}
		data["heading"] = heading
		data["order"] = page.Order
		data["fields"] = fieldsData(page.Order.Fields)
		name = partial(options, PartialOrder, defaultOrderTemplate)
	default:
		return nil, fmt.Errorf("vanilla renderer: unsupported view %q", page.View)
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type themeContext struct {
	Name       string `json:"name,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Style      string `json:"style,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

func themeData(options render.RenderOptions) themeContext {
	cfg := options.Theme
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   render.CSSVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return ctx
}

func partial(options render.RenderOptions, key, fallback string) string {
	if options.Theme != nil {
		if name := options.Theme.Partials[key]; name != "" {
			return name
		}
	}
	return fallback
}
