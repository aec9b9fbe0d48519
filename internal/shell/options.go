package shell

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/components/orderform"
	"github.com/goliatone/go-orderform/pkg/render"
)

const (
	DefaultTitle   = "Pizza Orders"
	DefaultHeading = "Pizza, made to order"
)

type Options struct {
	Title   string
	Heading string
	// Intro is operator supplied HTML shown on the landing page. It is
	// sanitized before rendering.
	Intro string

	Renderers    *render.Registry
	Themes       *render.Themes
	ThemeName    string
	ThemeVariant string

	// Order serves /order. When nil a component is built from OrderOptions
	// sharing the renderers, themes and logger above.
	Order        *orderform.Component
	OrderOptions []orderform.OptionFn

	Logger *zap.Logger
}

type Option func(*Options)

func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

func WithHeading(heading string) Option {
	return func(o *Options) {
		o.Heading = heading
	}
}

func WithIntro(html string) Option {
	return func(o *Options) {
		o.Intro = html
	}
}

func WithRenderers(registry *render.Registry) Option {
	return func(o *Options) {
		o.Renderers = registry
	}
}

func WithTheme(themes *render.Themes, name, variant string) Option {
	return func(o *Options) {
		o.Themes = themes
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}

// WithOrderComponent mounts an existing order form component.
func WithOrderComponent(component *orderform.Component) Option {
	return func(o *Options) {
		o.Order = component
	}
}

// WithOrderOptions configures the order form component built by New.
func WithOrderOptions(fns ...orderform.OptionFn) Option {
	return func(o *Options) {
		o.OrderOptions = append(o.OrderOptions, fns...)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
