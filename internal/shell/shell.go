// Package shell is the top-level router: the landing page at "/", the order
// form at "/order", static assets and a health probe.
package shell

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/components/orderform"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/jsonview"
	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
)

// AssetsPath is where the stylesheet and other static files are served.
const AssetsPath = "/assets"

// Shell routes requests to the landing view and the order form component.
type Shell struct {
	router  chi.Router
	opts    Options
	landing render.Landing
}

// New builds the router. The order form is mounted at render.PathOrder.
func New(opts ...Option) (*Shell, error) {
	o := Options{
		Title:   DefaultTitle,
		Heading: DefaultHeading,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Renderers == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("shell: build html renderer: %w", err)
		}
		o.Renderers = render.NewRegistry()
		o.Renderers.MustRegister(html)
		o.Renderers.MustRegister(jsonview.New())
	}
	if o.Order == nil {
		fns := []orderform.OptionFn{
			orderform.WithRenderers(o.Renderers),
			orderform.WithLogger(o.Logger.Named("orderform")),
		}
		if o.Themes != nil {
			fns = append(fns, orderform.WithTheme(o.Themes, o.ThemeName, o.ThemeVariant))
		}
		o.Order = orderform.New(append(fns, o.OrderOptions...)...)
	}

	s := &Shell{
		opts: o,
		landing: render.Landing{
			Heading:   strings.TrimSpace(o.Heading),
			IntroHTML: SanitizeIntro(o.Intro),
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(o.Logger))
	r.Use(middleware.Recoverer)

	r.Get(render.PathHome, s.serveLanding)
	r.Head(render.PathHome, s.serveLanding)
	r.Get("/healthz", serveHealth)

	if _, err := o.Order.RegisterRoutes(r, ""); err != nil {
		return nil, fmt.Errorf("shell: mount order form: %w", err)
	}

	assets := http.StripPrefix(AssetsPath+"/", http.FileServer(http.FS(vanilla.AssetsFS())))
	r.Handle(AssetsPath+"/*", assets)

	s.router = r
	return s, nil
}

func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Routes lists the registered "METHOD pattern" pairs.
func (s *Shell) Routes() ([]string, error) {
	var out []string
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		out = append(out, method+" "+route)
		return nil
	})
	return out, err
}

func (s *Shell) serveLanding(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.opts.Renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	options := render.RenderOptions{}
	if s.opts.Themes != nil {
		if cfg, err := s.opts.Themes.Config(s.opts.ThemeName, s.opts.ThemeVariant); err == nil {
			options.Theme = cfg
		} else {
			s.opts.Logger.Warn("landing theme", zap.Error(err))
		}
	}

	body, err := renderer.Render(r.Context(), render.LandingPage(s.opts.Title, s.landing), options)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *Shell) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.opts.Logger.Error("landing render failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

var introPolicy = bluemonday.UGCPolicy()

// SanitizeIntro strips scripts, event handlers and other unsafe markup from
// operator supplied landing HTML.
func SanitizeIntro(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(introPolicy.Sanitize(raw))
}
