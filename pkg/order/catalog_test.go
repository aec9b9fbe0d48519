package order_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/order"
)

func TestDefaultCatalog_LabelsAllIdentifiers(t *testing.T) {
	catalog, err := order.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	wantToppings := []order.Option{
		{Value: "1", Label: "Pepperoni"},
		{Value: "2", Label: "Green Peppers"},
		{Value: "3", Label: "Pineapple"},
		{Value: "4", Label: "Mushrooms"},
		{Value: "5", Label: "Ham"},
	}
	if diff := cmp.Diff(wantToppings, catalog.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
	if got := catalog.SizeLabel(order.SizeMedium); got != "Medium" {
		t.Fatalf("expected Medium, got %q", got)
	}
}

func TestDefaultCatalog_ReturnsCopies(t *testing.T) {
	first, err := order.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	first.Toppings[0].Label = "changed"

	second, err := order.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if second.Toppings[0].Label != "Pepperoni" {
		t.Fatalf("default catalog was mutated: %#v", second.Toppings[0])
	}
}

func TestLoadCatalog_RejectsUnknownIdentifiers(t *testing.T) {
	input := strings.NewReader(`
sizes:
  - value: XL
    label: Extra large
toppings:
  - value: "1"
    label: Pepperoni
`)
	if _, err := order.LoadCatalog(input); err == nil {
		t.Fatalf("expected error for unknown size")
	}
}

func TestLoadCatalog_DefaultsLabelToValue(t *testing.T) {
	input := strings.NewReader(`
sizes:
  - value: S
toppings:
  - value: "3"
    label: "  Pineapple "
`)
	catalog, err := order.LoadCatalog(input)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	want := order.Catalog{
		Sizes:    []order.Option{{Value: "S", Label: "S"}},
		Toppings: []order.Option{{Value: "3", Label: "Pineapple"}},
	}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalog_RejectsDuplicates(t *testing.T) {
	input := strings.NewReader(`
sizes:
  - value: S
  - value: S
toppings:
  - value: "1"
`)
	if _, err := order.LoadCatalog(input); err == nil {
		t.Fatalf("expected duplicate size error")
	}
}
