package schema_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/schema"
)

func TestDefault_CompilesContract(t *testing.T) {
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}

	want := []schema.Field{
		{
			Name:            "fullName",
			Label:           "full name",
			Kind:            schema.KindString,
			Trim:            true,
			Required:        true,
			RequiredMessage: "Full name required",
			MinLength:       3,
			MaxLength:       20,
		},
		{
			Name:            "size",
			Label:           "size",
			Kind:            schema.KindString,
			Required:        true,
			RequiredMessage: "Size required",
			Enum:            []string{"S", "M", "L"},
		},
		{
			Name:  "toppings",
			Label: "toppings",
			Kind:  schema.KindArray,
			Enum:  []string{"1", "2", "3", "4", "5"},
		},
	}
	if diff := cmp.Diff(want, s.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsMissingOperation(t *testing.T) {
	raw := []byte(`
openapi: 3.0.3
info: {title: other, version: "1"}
paths:
  /api/other:
    get:
      responses:
        "200": {description: ok}
`)
	_, err := schema.Load(context.Background(), raw)
	if err == nil || !strings.Contains(err.Error(), "POST /api/order") {
		t.Fatalf("expected missing operation error, got %v", err)
	}
}

func TestLoad_EmptyPayload(t *testing.T) {
	if _, err := schema.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestLoad_CustomContractChangesMessages(t *testing.T) {
	raw := strings.Replace(string(schema.Contract()), "maxLength: 20", "maxLength: 10", 1)
	s, err := schema.Load(context.Background(), []byte(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	field, ok := s.Field("fullName")
	if !ok {
		t.Fatalf("expected fullName field")
	}
	if field.MaxLength != 10 {
		t.Fatalf("expected max length 10, got %d", field.MaxLength)
	}
}

func TestMapErrorPayload(t *testing.T) {
	fields := []string{"fullName", "size", "toppings"}
	mapping := schema.MapErrorPayload(fields, map[string][]string{
		"body.fullName":       {"name taken", " name taken "},
		"/toppings/0":         {"sold out"},
		"data[size]":          {"unavailable"},
		"#/properties/size":   {"unavailable"},
		"__all__":             {"kitchen closed"},
		"customer.loyaltyId":  {"unknown customer"},
		"toppings":            {"  "},
	})

	wantFields := map[string][]string{
		"fullName": {"name taken"},
		"size":     {"unavailable", "unavailable"},
		"toppings": {"sold out"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"kitchen closed", "unknown customer"}
	if diff := cmp.Diff(wantForm, mapping.Form); diff != "" {
		t.Fatalf("form mapping mismatch (-want +got):\n%s", diff)
	}
}
