// Package tui drives the order form from an interactive terminal.
package tui

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// Theme captures message prefixes. Keep minimal to avoid coupling the session
// to ANSI specifics.
type Theme struct {
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	ErrorPrefix:   "✗ ",
	SuccessPrefix: "✓ ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithCatalog sets the labels shown for sizes and toppings.
func WithCatalog(catalog order.Catalog) Option {
	return func(s *Session) {
		s.catalog = catalog.Clone()
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session prompts for the draft fields, submits through the form and
// re-prompts until the order is accepted or the user gives up.
type Session struct {
	form    *form.Form
	driver  PromptDriver
	catalog order.Catalog
	theme   Theme
	logger  *zap.Logger
}

// NewSession binds a terminal session to f.
func NewSession(f *form.Form, opts ...Option) (*Session, error) {
	if f == nil {
		return nil, errors.New("tui: form is required")
	}
	catalog, err := order.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("tui: load catalog: %w", err)
	}
	s := &Session{
		form:    f,
		catalog: catalog,
		theme:   DefaultTheme,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s, nil
}

// Run collects and submits an order. It returns nil once the order API
// accepted the draft, ErrAborted on Ctrl+C, ErrDeclined when the user does
// not retry after a failure, or the context error.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		if err := s.collect(ctx); err != nil {
			return err
		}

		err := s.submit(ctx)
		if err == nil {
			return nil
		}
		if _, ok := schema.AsValidationError(err); ok {
			if err := s.reportErrors(ctx); err != nil {
				return err
			}
			continue
		}
		return err
	}
}

// submit posts the draft, offering to resend it after failures that are not
// field errors. Resending is always user initiated.
func (s *Session) submit(ctx context.Context) error {
	for {
		err := s.form.Submit(ctx)
		if err == nil {
			notice := s.form.TakeNotice()
			if notice == "" {
				notice = form.SuccessMessage
			}
			return s.driver.Info(ctx, s.theme.SuccessPrefix+notice)
		}
		if _, ok := schema.AsValidationError(err); ok {
			return err
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn("order submission failed", zap.Error(err))
		failure := s.form.Snapshot().Failure
		if failure == "" {
			failure = form.FailureMessage(err)
		}
		if infoErr := s.driver.Info(ctx, s.theme.ErrorPrefix+failure); infoErr != nil {
			return infoErr
		}
		again, confirmErr := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Submit the same order again?",
			Default: true,
		})
		if confirmErr != nil {
			return confirmErr
		}
		if !again {
			return fmt.Errorf("%w: %v", ErrDeclined, err)
		}
	}
}

func (s *Session) collect(ctx context.Context) error {
	snap := s.form.Snapshot()

	name, err := s.driver.Input(ctx, InputConfig{
		Message: "Full name:",
		Default: snap.Draft.FullName,
		Help:    "Between 3 and 20 characters.",
	})
	if err != nil {
		return err
	}
	if err := s.form.Change(form.FieldFullName, name, false); err != nil {
		return err
	}

	sizeLabels := make([]string, 0, len(s.catalog.Sizes))
	sizeDefault := -1
	for i, opt := range s.catalog.Sizes {
		sizeLabels = append(sizeLabels, fmt.Sprintf("%s (%s)", opt.Label, opt.Value))
		if opt.Value == string(snap.Draft.Size) {
			sizeDefault = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      "Size:",
		Options:      sizeLabels,
		DefaultIndex: sizeDefault,
	})
	if err != nil {
		return err
	}
	size := ""
	if idx >= 0 && idx < len(s.catalog.Sizes) {
		size = s.catalog.Sizes[idx].Value
	}
	if err := s.form.Change(form.FieldSize, size, false); err != nil {
		return err
	}

	toppingLabels := make([]string, 0, len(s.catalog.Toppings))
	var toppingDefaults []int
	for i, opt := range s.catalog.Toppings {
		toppingLabels = append(toppingLabels, opt.Label)
		if snap.Draft.Toppings.Has(order.ToppingID(opt.Value)) {
			toppingDefaults = append(toppingDefaults, i)
		}
	}
	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Toppings:",
		Options:  toppingLabels,
		Defaults: toppingDefaults,
	})
	if err != nil {
		return err
	}
	selected := make(map[int]bool, len(picked))
	for _, i := range picked {
		selected[i] = true
	}
	for i, opt := range s.catalog.Toppings {
		if err := s.form.Change(form.FieldToppings, opt.Value, selected[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) reportErrors(ctx context.Context) error {
	snap := s.form.Snapshot()
	for _, field := range snap.Errors.Fields() {
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, field, snap.Errors[field])); err != nil {
			return err
		}
	}
	for _, message := range snap.FormErrors {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}
	return nil
}
