package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-orderform/pkg/form"
	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// Routes served by the shell.
const (
	PathHome  = "/"
	PathOrder = "/order"
)

// View identifies which page body a renderer should produce.
type View string

const (
	ViewLanding View = "landing"
	ViewOrder   View = "order"
)

// NavLink is one entry of the static navigation bar.
type NavLink struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// Navigation returns the two-link navigation bar with the entry matching
// current marked active.
func Navigation(current string) []NavLink {
	links := []NavLink{
		{Label: "Home", Href: PathHome},
		{Label: "Order", Href: PathOrder},
	}
	for i := range links {
		links[i].Active = links[i].Href == current
	}
	return links
}

// Page is the render input for one shell view.
type Page struct {
	View    View       `json:"view"`
	Title   string     `json:"title"`
	Path    string     `json:"path"`
	Nav     []NavLink  `json:"nav"`
	Landing *Landing   `json:"landing,omitempty"`
	Order   *OrderView `json:"order,omitempty"`
}

// Landing is the body of the home page.
type Landing struct {
	Heading string `json:"heading"`
	// IntroHTML must already be sanitized.
	IntroHTML string `json:"introHtml,omitempty"`
}

// LandingPage builds the home page.
func LandingPage(title string, landing Landing) Page {
	return Page{
		View:    ViewLanding,
		Title:   title,
		Path:    PathHome,
		Nav:     Navigation(PathHome),
		Landing: &landing,
	}
}

// OrderPage builds the order form page.
func OrderPage(title string, view OrderView) Page {
	return Page{
		View:  ViewOrder,
		Title: title,
		Path:  PathOrder,
		Nav:   Navigation(PathOrder),
		Order: &view,
	}
}

// Input kinds used by FieldView.
const (
	InputText     = "text"
	InputRadio    = "radio"
	InputCheckbox = "checkbox"
)

// OrderView is the order form as seen by a renderer.
type OrderView struct {
	Action     string      `json:"action"`
	Fields     []FieldView `json:"fields"`
	FormErrors []string    `json:"formErrors,omitempty"`
	Notice     string      `json:"notice,omitempty"`
	Failure    string      `json:"failure,omitempty"`
	Submitting bool        `json:"submitting"`
	State      string      `json:"state"`
	Draft      order.Draft `json:"draft"`
}

// FieldView is one form control with its current value and error.
type FieldView struct {
	Name      string       `json:"name"`
	Label     string       `json:"label"`
	Input     string       `json:"input"`
	Value     string       `json:"value,omitempty"`
	Required  bool         `json:"required"`
	MinLength int          `json:"minLength,omitempty"`
	MaxLength int          `json:"maxLength,omitempty"`
	Error     string       `json:"error,omitempty"`
	Options   []OptionView `json:"options,omitempty"`
}

// OptionView is one radio or checkbox choice.
type OptionView struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// NewOrderView projects a form snapshot onto the schema fields. Choice
// labels come from the catalog; the notice is passed separately so callers
// can show it once.
func NewOrderView(s *schema.Schema, catalog order.Catalog, snap form.Snapshot, action, notice string) OrderView {
	if s == nil {
		s = schema.MustDefault()
	}
	if action == "" {
		action = PathOrder
	}

	view := OrderView{
		Action:     action,
		FormErrors: append([]string(nil), snap.FormErrors...),
		Notice:     notice,
		Failure:    snap.Failure,
		Submitting: snap.Submitting(),
		State:      snap.State.String(),
		Draft:      snap.Draft.Clone(),
	}

	for _, field := range s.Fields() {
		fv := FieldView{
			Name:      field.Name,
			Label:     displayLabel(field.Label),
			Input:     InputText,
			Required:  field.Required,
			MinLength: field.MinLength,
			MaxLength: field.MaxLength,
			Error:     snap.Errors[field.Name],
		}
		switch field.Name {
		case form.FieldFullName:
			fv.Value = snap.Draft.FullName
		case form.FieldSize:
			fv.Input = InputRadio
			fv.Value = string(snap.Draft.Size)
			for _, opt := range catalog.Sizes {
				fv.Options = append(fv.Options, OptionView{
					Value:   opt.Value,
					Label:   opt.Label,
					Checked: opt.Value == string(snap.Draft.Size),
				})
			}
		case form.FieldToppings:
			fv.Input = InputCheckbox
			for _, opt := range catalog.Toppings {
				fv.Options = append(fv.Options, OptionView{
					Value:   opt.Value,
					Label:   opt.Label,
					Checked: snap.Draft.Toppings.Has(order.ToppingID(opt.Value)),
				})
			}
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// Field returns the named field view.
func (v OrderView) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

func displayLabel(label string) string {
	label = strings.TrimSpace(label)
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}
