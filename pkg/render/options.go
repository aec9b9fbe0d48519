package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data renderers can use without changing
// the page itself.
type RenderOptions struct {
	// HiddenFields are emitted inside the form as hidden inputs (CSRF token
	// and similar).
	HiddenFields map[string]string
	// Theme carries the resolved theme tokens, CSS variables and asset
	// resolver. Nil renders unthemed output.
	Theme *theme.RendererConfig
}
