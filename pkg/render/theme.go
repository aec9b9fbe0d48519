package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Theme defaults for the order shell.
const (
	DefaultThemeName    = "pizza"
	DefaultThemeVariant = "light"
)

// PizzaTheme returns the built-in manifest: a light base with a dark variant.
func PizzaTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-brand":   "#b3261e",
			"color-surface": "#fffaf3",
			"color-text":    "#2b2118",
			"color-muted":   "#7a6a5c",
			"color-error":   "#b00020",
			"color-success": "#1b7f3b",
			"radius":        "6px",
		},
		Templates: map[string]string{
			"layout": "layout.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "orderform.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"color-surface": "#fffaf3",
				},
			},
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#1f1a17",
					"color-text":    "#f5ede4",
					"color-muted":   "#b8a899",
				},
			},
		},
	}
}

// Themes resolves theme selections into renderer configuration. It satisfies
// theme.ThemeSelector.
type Themes struct {
	mu             sync.RWMutex
	provider       theme.ThemeProvider
	manifests      map[string]*theme.Manifest
	fallbacks      map[string]string
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers manifests and remembers the default selection. With
// no manifests the built-in PizzaTheme is used.
func NewThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Themes, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{PizzaTheme()}
	}
	if strings.TrimSpace(defaultTheme) == "" {
		defaultTheme = manifests[0].Name
	}

	registry := theme.NewRegistry()
	t := &Themes{
		provider:       registry,
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		t.manifests[manifest.Name] = manifest
	}
	if _, ok := t.manifests[t.defaultTheme]; !ok {
		return nil, fmt.Errorf("render: default theme %q not registered", t.defaultTheme)
	}
	if _, err := t.Select("", ""); err != nil {
		return nil, err
	}
	return t, nil
}

// WithFallbacks sets partials used when a theme does not override them.
func (t *Themes) WithFallbacks(fallbacks map[string]string) *Themes {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fallbacks = copyStringMap(fallbacks)
	return t
}

// Provider exposes the underlying go-theme provider.
func (t *Themes) Provider() theme.ThemeProvider {
	return t.provider
}

// Names lists the registered theme names.
func (t *Themes) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves a theme and variant. Empty values fall back to the
// defaults; a variant the manifest does not declare is an error.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = t.defaultTheme
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not registered", name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = t.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// Config selects a theme and converts it into renderer configuration.
func (t *Themes) Config(name, variant string) (*theme.RendererConfig, error) {
	selection, err := t.Select(name, variant)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	fallbacks := t.fallbacks
	t.mu.RUnlock()
	return RendererConfig(selection, fallbacks), nil
}

// RendererConfig merges the base manifest with the selected variant. Tokens
// become CSS custom properties named "--<token>".
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStringMaps(manifest.Tokens, variant.Tokens)
	partials := mergeStringMaps(fallbacks, manifest.Templates, variant.Templates)

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := mergeStringMaps(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + file
		},
	}
}

// CSSVarsStyle renders CSS variables as a :root block with sorted keys.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func mergeStringMaps(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	return mergeStringMaps(in)
}
