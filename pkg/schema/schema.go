package schema

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi/order.yaml
var embeddedContract []byte

const (
	// OrderPath is the order submission path declared by the contract.
	OrderPath = "/api/order"

	mediaTypeJSON = "application/json"

	extFieldOrder      = "x-field-order"
	extTrim            = "x-trim"
	extRequiredMessage = "x-required-message"
)

// Kind is the shape of a field value.
type Kind string

const (
	KindString Kind = "string"
	KindArray  Kind = "array"
)

// Field holds the compiled rules for one draft property.
type Field struct {
	Name            string
	Label           string
	Kind            Kind
	Trim            bool
	Required        bool
	RequiredMessage string
	MinLength       int
	// MaxLength of zero means unbounded.
	MaxLength int
	// Enum restricts string values, or each element for array fields.
	Enum []string
}

// Schema is the declarative rule set used to validate drafts.
type Schema struct {
	fields []Field
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the schema compiled from the embedded order contract.
func Default() (*Schema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Load(context.Background(), embeddedContract)
	})
	return defaultSchema, defaultErr
}

// MustDefault is Default for init-time wiring; the embedded contract is part
// of the binary, so a failure is a build defect.
func MustDefault() *Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Contract returns a copy of the embedded OpenAPI document.
func Contract() []byte {
	return append([]byte(nil), embeddedContract...)
}

// Load parses an OpenAPI document and compiles the JSON request body schema of
// POST /api/order.
func Load(ctx context.Context, data []byte) (*Schema, error) {
	if len(data) == 0 {
		return nil, errors.New("schema: contract payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load contract: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schema: invalid contract: %w", err)
	}

	body, err := requestBodySchema(doc)
	if err != nil {
		return nil, err
	}
	return compile(body)
}

// Fields returns the compiled fields in validation order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		field.Enum = append([]string(nil), field.Enum...)
		out[i] = field
	}
	return out
}

// Field looks up a compiled field by name.
func (s *Schema) Field(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	for _, field := range s.fields {
		if field.Name == name {
			field.Enum = append([]string(nil), field.Enum...)
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists the field names in validation order.
func (s *Schema) FieldNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fields))
	for _, field := range s.fields {
		names = append(names, field.Name)
	}
	return names
}

func requestBodySchema(doc *openapi3.T) (*openapi3.Schema, error) {
	if doc.Paths == nil {
		return nil, errors.New("schema: contract does not declare any paths")
	}
	item := doc.Paths.Find(OrderPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("schema: contract does not declare POST %s", OrderPath)
	}
	op := item.Post
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("schema: POST %s has no request body", OrderPath)
	}
	media := op.RequestBody.Value.Content.Get(mediaTypeJSON)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("schema: POST %s has no %s body schema", OrderPath, mediaTypeJSON)
	}
	return media.Schema.Value, nil
}

func compile(body *openapi3.Schema) (*Schema, error) {
	if len(body.Properties) == 0 {
		return nil, errors.New("schema: request body declares no properties")
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	out := &Schema{}
	for _, name := range fieldOrder(body) {
		ref, ok := body.Properties[name]
		if !ok || ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("schema: %s lists unknown property %q", extFieldOrder, name)
		}
		prop := ref.Value

		field := Field{
			Name:            name,
			Label:           strings.TrimSpace(prop.Title),
			Kind:            KindString,
			Trim:            extensionBool(prop.Extensions, extTrim),
			RequiredMessage: extensionString(prop.Extensions, extRequiredMessage),
			MinLength:       int(prop.MinLength),
			Enum:            enumStrings(prop.Enum),
		}
		if field.Label == "" {
			field.Label = name
		}
		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}
		if _, ok := required[name]; ok {
			field.Required = true
		}
		if prop.Items != nil && prop.Items.Value != nil {
			field.Kind = KindArray
			field.Enum = enumStrings(prop.Items.Value.Enum)
		}
		if field.MaxLength > 0 && field.MinLength > field.MaxLength {
			return nil, fmt.Errorf("schema: property %q has minLength above maxLength", name)
		}
		out.fields = append(out.fields, field)
	}
	return out, nil
}

// fieldOrder honours x-field-order, appending any property it omits in the
// order of the required list and then by name.
func fieldOrder(body *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(body.Properties))
	var order []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		order = append(order, name)
	}

	for _, name := range extensionStrings(body.Extensions, extFieldOrder) {
		add(name)
	}
	for _, name := range body.Required {
		add(name)
	}
	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name)
	}
	return order
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func extensionValue(ext map[string]any, key string) any {
	if len(ext) == 0 {
		return nil
	}
	raw, ok := ext[key]
	if !ok {
		return nil
	}
	if msg, ok := raw.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(msg, &decoded); err != nil {
			return nil
		}
		return decoded
	}
	return raw
}

func extensionString(ext map[string]any, key string) string {
	switch v := extensionValue(ext, key).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func extensionBool(ext map[string]any, key string) bool {
	switch v := extensionValue(ext, key).(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

func extensionStrings(ext map[string]any, key string) []string {
	switch v := extensionValue(ext, key).(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return nil
	}
}
