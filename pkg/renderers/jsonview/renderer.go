// Package jsonview renders order form pages as JSON documents for API
// clients and tests.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-orderform/pkg/render"
)

type Option func(*Renderer)

// WithIndent pretty-prints the output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes the page model as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Document is the JSON shape produced by Render.
type Document struct {
	render.Page
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Theme  *Theme               `json:"theme,omitempty"`
}

// Theme is the serialisable part of a theme.RendererConfig.
type Theme struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant,omitempty"`
	CSSVars    map[string]string `json:"cssVars,omitempty"`
	Stylesheet string            `json:"stylesheet,omitempty"`
}

func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	doc := Document{
		Page:   page,
		Hidden: render.SortedHiddenFields(options.HiddenFields),
	}
	if cfg := options.Theme; cfg != nil {
		doc.Theme = &Theme{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			CSSVars: cfg.CSSVars,
		}
		if cfg.AssetURL != nil {
			doc.Theme.Stylesheet = cfg.AssetURL("stylesheet")
		}
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview renderer: encode: %w", err)
	}
	return append(out, '\n'), nil
}
