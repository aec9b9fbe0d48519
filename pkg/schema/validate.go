package schema

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-orderform/pkg/order"
)

// Rule names the check that produced an Issue.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "minLength"
	RuleMaxLength Rule = "maxLength"
	RuleEnum      Rule = "enum"
	// RuleRemote marks messages reported by the order API rather than the
	// local schema.
	RuleRemote Rule = "remote"
)

// priority orders rules when several fail on one field.
var priority = map[Rule]int{
	RuleRequired:  0,
	RuleMinLength: 1,
	RuleMaxLength: 2,
	RuleEnum:      3,
	RuleRemote:    4,
}

// Issue is a single violation with location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one draft.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors maps a field name to the single message shown for it.
type Errors map[string]string

// Clone returns a copy; an empty map clones to nil.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for field, message := range e {
		out[field] = message
	}
	return out
}

// Fields returns the field names with messages, sorted.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Errors reduces the issue list to one message per field using the rule
// priority. Form-level issues (no field) are not included.
func (r Result) Errors() Errors {
	return errorsFromIssues(r.Issues)
}

// Err returns a *ValidationError for invalid results and nil otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Issues: append([]Issue(nil), r.Issues...)}
}

// Validate checks a draft against the default schema.
func Validate(draft order.Draft) Result {
	return MustDefault().Validate(draft)
}

// Validate evaluates every rule against the draft and reports all violations.
func (s *Schema) Validate(draft order.Draft) Result {
	result := Result{Valid: true}
	if s == nil {
		return result
	}

	values := draftValues(draft)
	for _, field := range s.fields {
		result.Issues = append(result.Issues, field.check(values[field.Name])...)
	}
	if len(result.Issues) > 0 {
		result.Valid = false
	}
	return result
}

func draftValues(draft order.Draft) map[string]any {
	return map[string]any{
		"fullName": draft.FullName,
		"size":     string(draft.Size),
		"toppings": draft.Toppings.Strings(),
	}
}

func (f Field) check(value any) []Issue {
	switch f.Kind {
	case KindArray:
		items, _ := value.([]string)
		return f.checkItems(items)
	default:
		text, _ := value.(string)
		return f.checkString(text)
	}
}

func (f Field) checkString(value string) []Issue {
	if f.Trim {
		value = strings.TrimSpace(value)
	}
	path := "/" + f.Name

	var issues []Issue
	if f.Required && value == "" {
		issues = append(issues, f.issue(path, RuleRequired, f.requiredMessage()))
	}
	length := utf8.RuneCountInString(value)
	if f.MinLength > 0 && length < f.MinLength {
		issues = append(issues, f.issue(path, RuleMinLength,
			fmt.Sprintf("%s must be at least %d characters", f.Label, f.MinLength)))
	}
	if f.MaxLength > 0 && length > f.MaxLength {
		issues = append(issues, f.issue(path, RuleMaxLength,
			fmt.Sprintf("%s must be at most %d characters", f.Label, f.MaxLength)))
	}
	if len(f.Enum) > 0 && !contains(f.Enum, value) {
		issues = append(issues, f.issue(path, RuleEnum, f.enumMessage()))
	}
	return issues
}

func (f Field) checkItems(items []string) []Issue {
	var issues []Issue
	if f.Required && len(items) == 0 {
		issues = append(issues, f.issue("/"+f.Name, RuleRequired, f.requiredMessage()))
	}
	if len(f.Enum) == 0 {
		return issues
	}
	for idx, item := range items {
		if contains(f.Enum, item) {
			continue
		}
		issues = append(issues, f.issue("/"+f.Name+"/"+strconv.Itoa(idx), RuleEnum, f.enumMessage()))
	}
	return issues
}

func (f Field) issue(path string, rule Rule, message string) Issue {
	return Issue{Path: path, Field: f.Name, Rule: rule, Message: message}
}

func (f Field) requiredMessage() string {
	if f.RequiredMessage != "" {
		return f.RequiredMessage
	}
	return f.Label + " is a required field"
}

func (f Field) enumMessage() string {
	return fmt.Sprintf("%s must be %s", f.Label, strings.Join(f.Enum, " or "))
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func errorsFromIssues(issues []Issue) Errors {
	if len(issues) == 0 {
		return nil
	}
	out := make(Errors)
	rank := make(map[string]int)
	for _, issue := range issues {
		if issue.Field == "" {
			continue
		}
		p := priority[issue.Rule]
		if current, ok := rank[issue.Field]; ok && current <= p {
			continue
		}
		rank[issue.Field] = p
		out[issue.Field] = issue.Message
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidationError is the structured, multi-field failure raised when a draft
// is rejected locally or by the order API.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "schema: validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "schema: validation failed: " + strings.Join(parts, "; ")
}

// Errors returns one message per field.
func (e *ValidationError) Errors() Errors {
	if e == nil {
		return nil
	}
	return errorsFromIssues(e.Issues)
}

// FormMessages returns messages that are not attached to a field.
func (e *ValidationError) FormMessages() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, issue := range e.Issues {
		if issue.Field == "" {
			out = append(out, issue.Message)
		}
	}
	return out
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) && verr != nil {
		return verr, true
	}
	return nil, false
}
