// Package orderform is the top-level entry point: type aliases and
// constructors for embedding the pizza order form without importing each
// sub-package.
package orderform

import (
	"io/fs"

	component "github.com/goliatone/go-orderform/components/orderform"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/submit"
)

// Draft aliases order.Draft, the unsaved order input.
type Draft = order.Draft

// ValidationError aliases schema.ValidationError.
type ValidationError = schema.ValidationError

// TransportError aliases submit.TransportError.
type TransportError = submit.TransportError

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewComponent builds the HTTP order form component. Mount it with
// Component.RegisterRoutes or Component.Handler.
func NewComponent(fns ...component.OptionFn) *component.Component {
	return component.New(fns...)
}

// NewSubmitter returns a client posting drafts to endpoint + "/api/order".
func NewSubmitter(endpoint string, opts ...submit.Option) *submit.Client {
	return submit.New(append([]submit.Option{submit.WithEndpoint(endpoint)}, opts...)...)
}

// Validate checks draft against the embedded order contract.
func Validate(draft Draft) schema.Result {
	return schema.Validate(draft)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet referenced by the built-in theme.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(orderform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
