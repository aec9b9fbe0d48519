package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/submit"
)

// Field names accepted by Change.
const (
	FieldFullName = "fullName"
	FieldSize     = "size"
	FieldToppings = "toppings"
)

// SuccessMessage is the notice shown after the order API accepts a draft.
const SuccessMessage = "Order submitted!"

var (
	// ErrSubmitInFlight is returned by Submit while a previous submission is
	// still waiting for the order API.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrUnknownField is returned by Change for field names outside the draft.
	ErrUnknownField = errors.New("form: unknown field")
)

// Notifier receives the confirmation message after a successful submit.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, message string) {
	fn(ctx, message)
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier registers the success notifier.
func WithNotifier(notifier Notifier) Option {
	return func(f *Form) {
		f.notifier = notifier
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDraft seeds the form with an initial draft instead of the empty one.
func WithDraft(draft order.Draft) Option {
	return func(f *Form) {
		f.draft = draft.Clone()
	}
}

// Form is the order form state container. It is safe for concurrent use.
type Form struct {
	mu sync.Mutex

	schema    *schema.Schema
	submitter submit.Submitter
	notifier  Notifier
	logger    *zap.Logger

	draft      order.Draft
	errors     schema.Errors
	formErrors []string
	state      State
	inFlight   bool
	notice     string
	failure    string
}

// New builds a Form validating with s (the default schema when nil) and
// posting through submitter.
func New(s *schema.Schema, submitter submit.Submitter, opts ...Option) *Form {
	if s == nil {
		s = schema.MustDefault()
	}
	f := &Form{
		schema:    s,
		submitter: submitter,
		logger:    zap.NewNop(),
		draft:     order.Empty(),
		state:     StateEditing,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Change applies one field edit to the draft. Scalar fields are replaced;
// toppings follow checkbox semantics (added when checked, removed when not).
// No validation happens here.
func (f *Form) Change(field, value string, checked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldFullName:
		f.draft.FullName = value
	case FieldSize:
		f.draft.Size = order.Size(value)
	case FieldToppings:
		if err := f.draft.Toppings.Set(order.ToppingID(value), checked); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Submit validates the draft and, when valid, posts it. While the request is
// outstanding the form reports StateSubmitting and rejects further submits
// with ErrSubmitInFlight.
//
// On success the notifier receives SuccessMessage before the draft is reset.
// A *schema.ValidationError (local or from the API) populates the field
// errors. Any other failure is kept as the visible failure message and the
// draft is preserved.
func (f *Form) Submit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	f.state = StateValidating
	f.notice = ""
	f.failure = ""
	draft := f.draft.Clone()
	result := f.schema.Validate(draft)
	if !result.Valid {
		f.errors = result.Errors()
		f.formErrors = nil
		f.state = StateEditing
		f.mu.Unlock()
		f.logger.Debug("order draft rejected", zap.Strings("fields", result.Errors().Fields()))
		return &schema.ValidationError{Issues: result.Issues}
	}

	f.errors = nil
	f.formErrors = nil
	f.state = StateSubmitting
	f.inFlight = true
	submitter := f.submitter
	f.mu.Unlock()

	err := f.post(ctx, submitter, draft)
	if err == nil && f.notifier != nil {
		f.notifier.Notify(ctx, SuccessMessage)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.state = StateEditing

	if err == nil {
		f.draft = order.Empty()
		f.errors = nil
		f.notice = SuccessMessage
		f.logger.Info("order submitted", zap.String("size", string(draft.Size)), zap.Int("toppings", len(draft.Toppings)))
		return nil
	}

	if verr, ok := schema.AsValidationError(err); ok {
		f.errors = verr.Errors()
		f.formErrors = verr.FormMessages()
		f.logger.Info("order rejected by api", zap.Error(err))
		return err
	}

	f.failure = FailureMessage(err)
	f.logger.Warn("order submission failed", zap.Error(err))
	return fmt.Errorf("form: submit: %w", err)
}

func (f *Form) post(ctx context.Context, submitter submit.Submitter, draft order.Draft) (err error) {
	if submitter == nil {
		return errors.New("form: no submitter configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("form: submitter panic: %v", r)
		}
	}()
	return submitter.Submit(ctx, draft)
}

// Snapshot returns a copy of the current form state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		Draft:      f.draft.Clone(),
		Errors:     f.errors.Clone(),
		FormErrors: append([]string(nil), f.formErrors...),
		State:      f.state,
		Notice:     f.notice,
		Failure:    f.failure,
	}
}

// TakeNotice returns the pending notice and clears it so it shows once.
func (f *Form) TakeNotice() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	notice := f.notice
	f.notice = ""
	return notice
}

// Reset restores the empty draft and clears errors, notice and failure. A
// submission in flight is unaffected.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = order.Empty()
	f.errors = nil
	f.formErrors = nil
	f.notice = ""
	f.failure = ""
}

// FailureMessage turns a non-validation submit error into the text shown to
// the person placing the order.
func FailureMessage(err error) string {
	var terr *submit.TransportError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &terr):
		return terr.Message()
	case errors.Is(err, context.Canceled):
		return "Order submission was cancelled before the order service answered."
	case errors.Is(err, context.DeadlineExceeded):
		return "Order could not be submitted: the order service did not answer in time."
	default:
		return "Order could not be submitted: " + err.Error()
	}
}
