package orderform

import (
	"fmt"
	"net/http"
	"sync"
)

// Component wraps the order form handler, its configuration, and routing
// helpers. All routes registered through one Component share its sessions.
type Component struct {
	opts Options

	once    sync.Once
	handler http.Handler
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the component's handler. Repeated calls return the same
// instance.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	c.once.Do(func() {
		c.handler = HandlerWithOptions(c.opts)
	})
	return c.handler
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	if mux == nil {
		return "", fmt.Errorf("orderform: missing mux")
	}
	return register(mux, basePath, c.opts.RoutePath, c.Handler()), nil
}
