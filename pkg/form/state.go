package form

import (
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// State is the lifecycle position of a Form.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a point-in-time copy of a Form for rendering.
type Snapshot struct {
	Draft  order.Draft   `json:"draft"`
	Errors schema.Errors `json:"errors,omitempty"`
	// FormErrors are messages the order API returned for no particular field.
	FormErrors []string `json:"formErrors,omitempty"`
	State      State    `json:"state"`
	// Notice is the confirmation left by the last successful submit.
	Notice string `json:"notice,omitempty"`
	// Failure describes the last submit that failed for a reason other than
	// field validation.
	Failure string `json:"failure,omitempty"`
}

// Submitting reports whether a submission is outstanding.
func (s Snapshot) Submitting() bool {
	return s.State == StateSubmitting
}

// HasErrors reports whether any field or form error is present.
func (s Snapshot) HasErrors() bool {
	return len(s.Errors) > 0 || len(s.FormErrors) > 0
}
