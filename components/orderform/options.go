package orderform

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/submit"
)

const (
	DefaultRoutePath  = "/order"
	DefaultTitle      = "Order"
	DefaultCookieName = "orderform_session"
	DefaultSessionTTL = 30 * time.Minute
)

// GuardFunc can reject a request before the form is touched. Errors
// implementing HTTPError choose the status code; others answer 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	Title     string

	Schema    *schema.Schema
	Catalog   *order.Catalog
	Submitter submit.Submitter

	Renderers    *render.Registry
	Themes       *render.Themes
	ThemeName    string
	ThemeVariant string

	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	Guard  GuardFunc
	Logger *zap.Logger
	Now    func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  DefaultRoutePath,
		Title:      DefaultTitle,
		CookieName: DefaultCookieName,
		SessionTTL: DefaultSessionTTL,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = DefaultRoutePath
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Catalog != nil {
		catalog := opts.Catalog.Clone()
		opts.Catalog = &catalog
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithSchema(s *schema.Schema) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schema = s
	}
}

func WithCatalog(catalog order.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = &catalog
	}
}

// WithSubmitter sets the client posting drafts to the order API. Without it
// a submit.Client targeting submit.DefaultEndpoint is used.
func WithSubmitter(submitter submit.Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = submitter
	}
}

func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
	}
}

func WithTheme(themes *render.Themes, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Themes = themes
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}

func WithCookie(name string, secure bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
		o.CookieSecure = secure
	}
}

func WithSessionTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SessionTTL = ttl
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithClock overrides time.Now for session expiry.
func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}
