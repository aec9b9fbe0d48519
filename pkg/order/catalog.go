package order

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/default.yaml
var catalogFS embed.FS

const defaultCatalogPath = "catalog/default.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
	defaultErr     error
)

// Option is a value/label pair used for select and checkbox controls.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Catalog labels the fixed size and topping identifiers.
type Catalog struct {
	Sizes    []Option `json:"sizes" yaml:"sizes"`
	Toppings []Option `json:"toppings" yaml:"toppings"`
}

// DefaultCatalog returns a copy of the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	defaultOnce.Do(func() {
		f, err := catalogFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		catalog, err := LoadCatalog(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = catalog
	})

	if defaultErr != nil {
		return Catalog{}, defaultErr
	}
	return defaultCatalog.Clone(), nil
}

// LoadCatalog parses a YAML catalog. Every entry must reference a known size
// or topping id; ids may not repeat.
func LoadCatalog(r io.Reader) (Catalog, error) {
	if r == nil {
		return Catalog{}, fmt.Errorf("order: missing catalog reader")
	}

	var catalog Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return Catalog{}, fmt.Errorf("order: parse catalog: %w", err)
	}

	sizes, err := normaliseOptions(catalog.Sizes, "size", func(v string) bool { return Size(v).Valid() })
	if err != nil {
		return Catalog{}, err
	}
	toppings, err := normaliseOptions(catalog.Toppings, "topping", func(v string) bool { return ToppingID(v).Known() })
	if err != nil {
		return Catalog{}, err
	}
	if len(sizes) == 0 || len(toppings) == 0 {
		return Catalog{}, fmt.Errorf("order: catalog needs at least one size and one topping")
	}

	return Catalog{Sizes: sizes, Toppings: toppings}, nil
}

// SizeLabel returns the label for a size, or the raw value when unlisted.
func (c Catalog) SizeLabel(size Size) string {
	return labelFor(c.Sizes, string(size))
}

// ToppingLabel returns the label for a topping, or the raw id when unlisted.
func (c Catalog) ToppingLabel(id ToppingID) string {
	return labelFor(c.Toppings, string(id))
}

// Clone returns a copy that shares no slices with c.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Sizes:    append([]Option(nil), c.Sizes...),
		Toppings: append([]Option(nil), c.Toppings...),
	}
}

func normaliseOptions(options []Option, kind string, known func(string) bool) ([]Option, error) {
	out := make([]Option, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		value := strings.TrimSpace(option.Value)
		if !known(value) {
			return nil, fmt.Errorf("order: catalog lists unknown %s %q", kind, option.Value)
		}
		if _, ok := seen[value]; ok {
			return nil, fmt.Errorf("order: catalog repeats %s %q", kind, value)
		}
		seen[value] = struct{}{}

		label := strings.TrimSpace(option.Label)
		if label == "" {
			label = value
		}
		out = append(out, Option{Value: value, Label: label})
	}
	return out, nil
}

func labelFor(options []Option, value string) string {
	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}
