package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopping is returned when a topping id outside the known set is
// added to a draft through the form change handlers.
var ErrUnknownTopping = errors.New("order: unknown topping")

// Size is the pizza size. The zero value means "not selected".
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// Sizes lists the selectable sizes in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// Valid reports whether s is one of the three known sizes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// ToppingID identifies a topping on the wire ("1".."5").
type ToppingID string

// ToppingIDs lists the five known topping identifiers.
var ToppingIDs = []ToppingID{"1", "2", "3", "4", "5"}

// Known reports whether id is one of the five known topping identifiers.
func (id ToppingID) Known() bool {
	for _, known := range ToppingIDs {
		if id == known {
			return true
		}
	}
	return false
}

// Toppings is a set of topping ids. Insertion order is kept so encoding is
// stable, but carries no meaning.
type Toppings []ToppingID

// Has reports whether id is in the set.
func (t Toppings) Has(id ToppingID) bool {
	for _, existing := range t {
		if existing == id {
			return true
		}
	}
	return false
}

// Add inserts id when absent. Unknown ids are rejected.
func (t *Toppings) Add(id ToppingID) error {
	if !id.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownTopping, string(id))
	}
	if t.Has(id) {
		return nil
	}
	*t = append(*t, id)
	return nil
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (t *Toppings) Remove(id ToppingID) {
	out := make(Toppings, 0, len(*t))
	for _, existing := range *t {
		if existing != id {
			out = append(out, existing)
		}
	}
	*t = out
}

// Set adds id when checked and removes it otherwise, mirroring a checkbox.
func (t *Toppings) Set(id ToppingID, checked bool) error {
	if checked {
		return t.Add(id)
	}
	t.Remove(id)
	return nil
}

// Clone returns an independent copy; a nil set clones to an empty set.
func (t Toppings) Clone() Toppings {
	out := make(Toppings, len(t))
	copy(out, t)
	return out
}

// Strings returns the ids as plain strings.
func (t Toppings) Strings() []string {
	out := make([]string, 0, len(t))
	for _, id := range t {
		out = append(out, string(id))
	}
	return out
}

// MarshalJSON always encodes an array, never null.
func (t Toppings) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Strings())
}

// UnmarshalJSON decodes an array of ids, dropping duplicates. Unknown ids are
// kept so the schema can report them.
func (t *Toppings) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("order: decode toppings: %w", err)
	}
	out := make(Toppings, 0, len(raw))
	for _, value := range raw {
		id := ToppingID(value)
		if out.Has(id) {
			continue
		}
		out = append(out, id)
	}
	*t = out
	return nil
}

// Draft is the in-progress, unsaved order input.
type Draft struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings Toppings `json:"toppings"`
}

// Empty returns the initial draft: no name, no size, no toppings.
func Empty() Draft {
	return Draft{Toppings: Toppings{}}
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.Toppings = d.Toppings.Clone()
	return out
}

// TrimmedName returns the full name with surrounding whitespace removed, the
// form used by the validation rules.
func (d Draft) TrimmedName() string {
	return strings.TrimSpace(d.FullName)
}

// IsEmpty reports whether the draft equals the initial draft.
func (d Draft) IsEmpty() bool {
	return d.FullName == "" && d.Size == "" && len(d.Toppings) == 0
}
