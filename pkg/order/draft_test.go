package order_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/order"
)

func TestToppingsSet_CheckAddsOnce(t *testing.T) {
	toppings := order.Toppings{}
	for i := 0; i < 3; i++ {
		if err := toppings.Set("2", true); err != nil {
			t.Fatalf("set topping: %v", err)
		}
	}
	if diff := cmp.Diff(order.Toppings{"2"}, toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestToppingsSet_ToggleTwiceIsIdempotent(t *testing.T) {
	for _, id := range order.ToppingIDs {
		toppings := order.Toppings{"1", "4"}
		initial := toppings.Clone()

		checked := !toppings.Has(id)
		if err := toppings.Set(id, checked); err != nil {
			t.Fatalf("set %s: %v", id, err)
		}
		if err := toppings.Set(id, !checked); err != nil {
			t.Fatalf("unset %s: %v", id, err)
		}
		if len(toppings) != len(initial) {
			t.Fatalf("toggle %s changed size: %v -> %v", id, initial, toppings)
		}
		for _, want := range initial {
			if !toppings.Has(want) {
				t.Fatalf("toggle %s dropped %s: %v", id, want, toppings)
			}
		}
	}
}

func TestToppingsSet_RejectsUnknown(t *testing.T) {
	toppings := order.Toppings{}
	err := toppings.Set("9", true)
	if !errors.Is(err, order.ErrUnknownTopping) {
		t.Fatalf("expected ErrUnknownTopping, got %v", err)
	}
	if len(toppings) != 0 {
		t.Fatalf("unknown topping must not be stored: %v", toppings)
	}
}

func TestToppingsRemove_DoesNotAliasClone(t *testing.T) {
	original := order.Toppings{"1", "2", "3"}
	clone := original.Clone()
	clone.Remove("1")

	if diff := cmp.Diff(order.Toppings{"1", "2", "3"}, original); diff != "" {
		t.Fatalf("original mutated (-want +got):\n%s", diff)
	}
}

func TestDraftJSON_EmptyToppingsEncodeAsArray(t *testing.T) {
	payload, err := json.Marshal(order.Draft{FullName: "Al", Size: order.SizeMedium})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"fullName":"Al","size":"M","toppings":[]}`
	if string(payload) != want {
		t.Fatalf("unexpected payload\nwant: %s\n got: %s", want, payload)
	}
}

func TestDraftJSON_DecodeDropsDuplicates(t *testing.T) {
	var draft order.Draft
	if err := json.Unmarshal([]byte(`{"fullName":"Alice","size":"L","toppings":["2","2","7"]}`), &draft); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := order.Draft{FullName: "Alice", Size: order.SizeLarge, Toppings: order.Toppings{"2", "7"}}
	if diff := cmp.Diff(want, draft); diff != "" {
		t.Fatalf("draft mismatch (-want +got):\n%s", diff)
	}
}

func TestEmpty(t *testing.T) {
	draft := order.Empty()
	if !draft.IsEmpty() {
		t.Fatalf("expected empty draft, got %#v", draft)
	}
	if draft.Toppings == nil {
		t.Fatalf("expected non-nil toppings")
	}
}

func TestSizeValid(t *testing.T) {
	for _, size := range order.Sizes {
		if !size.Valid() {
			t.Fatalf("expected %q to be valid", size)
		}
	}
	for _, size := range []order.Size{"", "s", "XL", " M"} {
		if size.Valid() {
			t.Fatalf("expected %q to be invalid", size)
		}
	}
}
