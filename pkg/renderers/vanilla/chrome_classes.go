package vanilla

// Classes holds the CSS classes applied to page chrome. Zero fields fall
// back to DefaultClasses.
type Classes struct {
	Body     string `json:"body"`
	Nav      string `json:"nav"`
	Main     string `json:"main"`
	Landing  string `json:"landing"`
	Intro    string `json:"intro"`
	CTA      string `json:"cta"`
	Section  string `json:"section"`
	Form     string `json:"form"`
	Field    string `json:"field"`
	Fieldset string `json:"fieldset"`
	Invalid  string `json:"invalid"`
	Error    string `json:"error"`
	Errors   string `json:"errors"`
	Notice   string `json:"notice"`
	Failure  string `json:"failure"`
	Actions  string `json:"actions"`
}

// DefaultClasses matches the embedded stylesheet.
var DefaultClasses = Classes{
	Body:     "of-body",
	Nav:      "of-nav",
	Main:     "of-main",
	Landing:  "of-landing",
	Intro:    "of-intro",
	CTA:      "of-cta",
	Section:  "of-order",
	Form:     "of-form",
	Field:    "of-field",
	Fieldset: "of-fieldset",
	Invalid:  "of-invalid",
	Error:    "of-error",
	Errors:   "of-errors",
	Notice:   "of-notice",
	Failure:  "of-failure",
	Actions:  "of-actions",
}

func (c Classes) withDefaults() Classes {
	pick := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return sanitizeClassList(value)
	}
	d := DefaultClasses
	return Classes{
		Body:     pick(c.Body, d.Body),
		Nav:      pick(c.Nav, d.Nav),
		Main:     pick(c.Main, d.Main),
		Landing:  pick(c.Landing, d.Landing),
		Intro:    pick(c.Intro, d.Intro),
		CTA:      pick(c.CTA, d.CTA),
		Section:  pick(c.Section, d.Section),
		Form:     pick(c.Form, d.Form),
		Field:    pick(c.Field, d.Field),
		Fieldset: pick(c.Fieldset, d.Fieldset),
		Invalid:  pick(c.Invalid, d.Invalid),
		Error:    pick(c.Error, d.Error),
		Errors:   pick(c.Errors, d.Errors),
		Notice:   pick(c.Notice, d.Notice),
		Failure:  pick(c.Failure, d.Failure),
		Actions:  pick(c.Actions, d.Actions),
	}
}
