package orderform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/jsonview"
	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/submit"
)

// InFlightMessage is shown when a session posts while its previous order is
// still being submitted.
const InFlightMessage = "Your order is still being submitted. Please wait."

const maxBodyBytes = 64 << 10

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// Construction failures (for example broken templates) produce a handler
// that answers 500 and logs the cause.
func HandlerWithOptions(opts Options) http.Handler {
	h, err := newFormHandler(opts)
	if err != nil {
		logger := opts.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Error("order form unavailable", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	}
	return h
}

type formHandler struct {
	opts      Options
	schema    *schema.Schema
	catalog   order.Catalog
	renderers *render.Registry
	sessions  *sessionStore
	logger    *zap.Logger
}

func newFormHandler(opts Options) (*formHandler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	s := opts.Schema
	if s == nil {
		var err error
		if s, err = schema.Default(); err != nil {
			return nil, fmt.Errorf("orderform: load schema: %w", err)
		}
	}

	var catalog order.Catalog
	if opts.Catalog != nil {
		catalog = opts.Catalog.Clone()
	} else {
		var err error
		if catalog, err = order.DefaultCatalog(); err != nil {
			return nil, fmt.Errorf("orderform: load catalog: %w", err)
		}
	}

	registry := opts.Renderers
	if registry == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("orderform: build html renderer: %w", err)
		}
		registry = render.NewRegistry()
		registry.MustRegister(html)
		registry.MustRegister(jsonview.New())
	}

	submitter := opts.Submitter
	if submitter == nil {
		submitter = submit.New(submit.WithLogger(opts.Logger))
	}

	h := &formHandler{
		opts:      opts,
		schema:    s,
		catalog:   catalog,
		renderers: registry,
		logger:    opts.Logger,
	}
	h.sessions = newSessionStore(opts.SessionTTL, opts.Now, func() *form.Form {
		return form.New(s, submitter, form.WithLogger(opts.Logger))
	})
	return h, nil
}

func (h *formHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeStatusError(w, err, http.StatusForbidden)
			return
		}
	}

	sess := h.session(w, r)
	if r.Method != http.MethodPost {
		h.render(w, r, sess, http.StatusOK, sess.form.TakeNotice(), "")
		return
	}
	h.post(w, r, sess)
}

func (h *formHandler) post(w http.ResponseWriter, r *http.Request, sess *session) {
	logger := h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	input, err := decodeSubmission(w, r)
	if err != nil {
		writeStatusError(w, err, http.StatusBadRequest)
		return
	}
	if input.csrf == "" || input.csrf != sess.csrf {
		logger.Warn("order form csrf mismatch")
		writeStatusError(w, StatusError{Code: http.StatusForbidden, Err: errors.New("orderform: invalid csrf token")}, http.StatusForbidden)
		return
	}

	if sess.form.Snapshot().Submitting() {
		h.render(w, r, sess, http.StatusConflict, "", InFlightMessage)
		return
	}
	if err := h.apply(sess.form, input); err != nil {
		writeStatusError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}

	err = sess.form.Submit(r.Context())
	switch {
	case err == nil:
		logger.Info("order submitted")
		if wantsJSON(r) {
			h.render(w, r, sess, http.StatusOK, sess.form.TakeNotice(), "")
			return
		}
		http.Redirect(w, r, h.action(r), http.StatusSeeOther)
	case errors.Is(err, form.ErrSubmitInFlight):
		h.render(w, r, sess, http.StatusConflict, "", InFlightMessage)
	case isValidation(err):
		h.render(w, r, sess, http.StatusUnprocessableEntity, "", "")
	default:
		logger.Warn("order submission failed", zap.Error(err))
		h.render(w, r, sess, http.StatusBadGateway, "", "")
	}
}

// apply copies the posted values into the draft. Every catalog topping is
// treated as a checkbox: absent means unchecked.
func (h *formHandler) apply(f *form.Form, input submission) error {
	if err := f.Change(form.FieldFullName, input.fullName, false); err != nil {
		return err
	}
	if err := f.Change(form.FieldSize, input.size, false); err != nil {
		return err
	}
	selected := make(map[string]bool, len(input.toppings))
	for _, id := range input.toppings {
		selected[strings.TrimSpace(id)] = true
	}
	for _, opt := range h.catalog.Toppings {
		if err := f.Change(form.FieldToppings, opt.Value, selected[opt.Value]); err != nil {
			return err
		}
	}
	return nil
}

func (h *formHandler) render(w http.ResponseWriter, r *http.Request, sess *session, status int, notice, failure string) {
	renderer, err := h.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		h.logger.Error("order form renderer", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := render.NewOrderView(h.schema, h.catalog, sess.form.Snapshot(), h.action(r), notice)
	if failure != "" {
		view.Failure = failure
	}
	page := render.OrderPage(h.opts.Title, view)

	options := render.RenderOptions{
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken(sess.csrf)),
	}
	if h.opts.Themes != nil {
		cfg, err := h.opts.Themes.Config(h.opts.ThemeName, h.opts.ThemeVariant)
		if err != nil {
			h.logger.Warn("order form theme", zap.Error(err))
		} else {
			options.Theme = cfg
		}
	}

	body, err := renderer.Render(r.Context(), page, options)
	if err != nil {
		h.logger.Error("order form render failed", zap.String("renderer", renderer.Name()), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// action is the path the form posts back to: wherever the handler is mounted.
func (h *formHandler) action(r *http.Request) string {
	if r.URL != nil && r.URL.Path != "" {
		return r.URL.Path
	}
	return h.opts.RoutePath
}

func (h *formHandler) session(w http.ResponseWriter, r *http.Request) *session {
	if cookie, err := r.Cookie(h.opts.CookieName); err == nil {
		if sess, ok := h.sessions.get(cookie.Value); ok {
			return sess
		}
	}
	sess := h.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
	})
	return sess
}

type submission struct {
	fullName string
	size     string
	toppings []string
	csrf     string
}

type jsonSubmission struct {
	FullName string   `json:"fullName"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
	CSRF     string   `json:"_csrf"`
}

// decodeSubmission reads an urlencoded/multipart form or a JSON body. The
// CSRF token may also arrive in the X-CSRF-Token header.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (submission, error) {
	var out submission
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var payload jsonSubmission
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return out, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("orderform: decode json body: %w", err)}
		}
		out = submission{
			fullName: payload.FullName,
			size:     payload.Size,
			toppings: payload.Toppings,
			csrf:     payload.CSRF,
		}
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return out, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("orderform: parse form: %w", err)}
		}
		out = submission{
			fullName: r.PostForm.Get(form.FieldFullName),
			size:     r.PostForm.Get(form.FieldSize),
			toppings: r.PostForm[form.FieldToppings],
			csrf:     r.PostForm.Get(render.CSRFFieldName),
		}
	}

	if header := r.Header.Get("X-CSRF-Token"); header != "" && out.csrf == "" {
		out.csrf = header
	}
	return out, nil
}

func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	_, ok := schema.AsValidationError(err)
	return ok
}

func writeStatusError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
