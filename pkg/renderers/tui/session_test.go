package tui_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/submit"
)

type answers struct {
	name     string
	size     int
	toppings []int
}

type scriptedDriver struct {
	rounds   []answers
	confirms []bool
	round    int

	inputs   []tui.InputConfig
	selects  []tui.SelectConfig
	multis   []tui.SelectConfig
	confirmN int
	infos    []string
	abortAt  int
}

func (d *scriptedDriver) current() answers {
	if d.round < len(d.rounds) {
		return d.rounds[d.round]
	}
	return d.rounds[len(d.rounds)-1]
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.inputs = append(d.inputs, cfg)
	if d.abortAt > 0 && len(d.inputs) == d.abortAt {
		return "", tui.ErrAborted
	}
	return d.current().name, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	answer := false
	if d.confirmN < len(d.confirms) {
		answer = d.confirms[d.confirmN]
	}
	d.confirmN++
	return answer, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	d.selects = append(d.selects, cfg)
	return d.current().size, nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	d.multis = append(d.multis, cfg)
	picked := d.current().toppings
	d.round++
	return picked, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type countingSubmitter struct {
	errs   []error
	drafts []order.Draft
}

func (c *countingSubmitter) Submit(_ context.Context, draft order.Draft) error {
	c.drafts = append(c.drafts, draft)
	if len(c.drafts) <= len(c.errs) {
		return c.errs[len(c.drafts)-1]
	}
	return nil
}

func newSession(t *testing.T, driver tui.PromptDriver, sub submit.Submitter) (*tui.Session, *form.Form) {
	t.Helper()
	f := form.New(nil, sub)
	session, err := tui.NewSession(f, tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session, f
}

func TestSession_SubmitsValidOrder(t *testing.T) {
	driver := &scriptedDriver{rounds: []answers{{name: "Ann Lee", size: 1, toppings: []int{0, 2}}}}
	sub := &countingSubmitter{}
	session, f := newSession(t, driver, sub)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []order.Draft{{FullName: "Ann Lee", Size: order.SizeMedium, Toppings: order.Toppings{"1", "3"}}}
	if diff := cmp.Diff(want, sub.drafts); diff != "" {
		t.Fatalf("submitted drafts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"✓ Order submitted!"}, driver.infos); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !f.Snapshot().Draft.IsEmpty() {
		t.Fatalf("expected draft reset after success")
	}
	if diff := cmp.Diff([]string{"Small (S)", "Medium (M)", "Large (L)"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("size options mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_RepromptsWithErrorsAndDefaults(t *testing.T) {
	driver := &scriptedDriver{rounds: []answers{
		{name: "Al", size: 2, toppings: []int{4}},
		{name: "Alan", size: 2, toppings: []int{4}},
	}}
	sub := &countingSubmitter{}
	session, _ := newSession(t, driver, sub)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sub.drafts) != 1 || sub.drafts[0].FullName != "Alan" {
		t.Fatalf("expected exactly one submission for Alan, got %+v", sub.drafts)
	}
	wantInfos := []string{
		"✗ fullName: full name must be at least 3 characters",
		"✓ Order submitted!",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if driver.inputs[1].Default != "Al" {
		t.Fatalf("expected previous name as default, got %q", driver.inputs[1].Default)
	}
	if driver.selects[1].DefaultIndex != 2 {
		t.Fatalf("expected previous size as default, got %d", driver.selects[1].DefaultIndex)
	}
	if diff := cmp.Diff([]int{4}, driver.multis[1].Defaults); diff != "" {
		t.Fatalf("topping defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_TransportFailureAsksBeforeResubmitting(t *testing.T) {
	driver := &scriptedDriver{
		rounds:   []answers{{name: "Ann Lee", size: 0}},
		confirms: []bool{true},
	}
	sub := &countingSubmitter{errs: []error{&submit.TransportError{StatusCode: http.StatusBadGateway}}}
	session, _ := newSession(t, driver, sub)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sub.drafts) != 2 {
		t.Fatalf("expected two submissions, got %d", len(sub.drafts))
	}
	if driver.confirmN != 1 {
		t.Fatalf("expected one confirmation prompt, got %d", driver.confirmN)
	}
	if len(driver.inputs) != 1 {
		t.Fatalf("resubmission must not re-prompt fields, got %d inputs", len(driver.inputs))
	}
	wantInfos := []string{
		"✗ Order could not be submitted (502 Bad Gateway). Please try again.",
		"✓ Order submitted!",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DeclinedResubmission(t *testing.T) {
	driver := &scriptedDriver{
		rounds:   []answers{{name: "Ann Lee", size: 0}},
		confirms: []bool{false},
	}
	sub := &countingSubmitter{errs: []error{errors.New("offline")}}
	session, f := newSession(t, driver, sub)

	err := session.Run(context.Background())
	if !errors.Is(err, tui.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if f.Snapshot().Draft.FullName != "Ann Lee" {
		t.Fatalf("draft must be preserved after failure")
	}
}

func TestSession_Abort(t *testing.T) {
	driver := &scriptedDriver{rounds: []answers{{name: "Ann"}}, abortAt: 1}
	sub := &countingSubmitter{}
	session, _ := newSession(t, driver, sub)

	if err := session.Run(context.Background()); !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if len(sub.drafts) != 0 {
		t.Fatalf("aborted session must not submit")
	}
}

func TestNewSession_RequiresForm(t *testing.T) {
	if _, err := tui.NewSession(nil); err == nil {
		t.Fatalf("expected error without form")
	}
}
