package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/schema"
)

func TestNavigation_MarksCurrentLink(t *testing.T) {
	want := []render.NavLink{
		{Label: "Home", Href: "/"},
		{Label: "Order", Href: "/order", Active: true},
	}
	if diff := cmp.Diff(want, render.Navigation("/order")); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}

	home := render.LandingPage("Pizza", render.Landing{Heading: "Welcome"})
	if !home.Nav[0].Active || home.Nav[1].Active {
		t.Fatalf("expected Home active on landing, got %+v", home.Nav)
	}
	if home.View != render.ViewLanding || home.Order != nil {
		t.Fatalf("unexpected landing page %+v", home)
	}
}

func TestNewOrderView_ProjectsSnapshot(t *testing.T) {
	catalog, err := order.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	snap := form.Snapshot{
		Draft: order.Draft{
			FullName: "Al",
			Size:     order.SizeLarge,
			Toppings: order.Toppings{"3"},
		},
		Errors:  schema.Errors{"fullName": "full name must be at least 3 characters"},
		Failure: "boom",
		State:   form.StateEditing,
	}

	view := render.NewOrderView(schema.MustDefault(), catalog, snap, "", "Order submitted!")

	if view.Action != "/order" {
		t.Fatalf("expected default action, got %q", view.Action)
	}
	if view.Notice != "Order submitted!" || view.Failure != "boom" {
		t.Fatalf("unexpected notice/failure: %q / %q", view.Notice, view.Failure)
	}

	names := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		names = append(names, field.Name)
	}
	if diff := cmp.Diff([]string{"fullName", "size", "toppings"}, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	name, _ := view.Field("fullName")
	wantName := render.FieldView{
		Name:      "fullName",
		Label:     "Full name",
		Input:     render.InputText,
		Value:     "Al",
		Required:  true,
		MinLength: 3,
		MaxLength: 20,
		Error:     "full name must be at least 3 characters",
	}
	if diff := cmp.Diff(wantName, name); diff != "" {
		t.Fatalf("name field mismatch (-want +got):\n%s", diff)
	}

	size, _ := view.Field("size")
	wantSizes := []render.OptionView{
		{Value: "S", Label: "Small"},
		{Value: "M", Label: "Medium"},
		{Value: "L", Label: "Large", Checked: true},
	}
	if diff := cmp.Diff(wantSizes, size.Options); diff != "" {
		t.Fatalf("size options mismatch (-want +got):\n%s", diff)
	}

	toppings, _ := view.Field("toppings")
	if toppings.Input != render.InputCheckbox || len(toppings.Options) != 5 {
		t.Fatalf("unexpected toppings field %+v", toppings)
	}
	for _, opt := range toppings.Options {
		if opt.Checked != (opt.Value == "3") {
			t.Fatalf("unexpected checked state for %s", opt.Value)
		}
	}
}
