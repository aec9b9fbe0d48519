package submit

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const maxBodyExcerpt = 200

var (
	excerptPolicyOnce sync.Once
	excerptPolicy     *bluemonday.Policy
)

// excerpt strips markup from an upstream response body and truncates it so
// it can be shown next to the form.
func excerpt(body []byte) string {
	excerptPolicyOnce.Do(func() {
		excerptPolicy = bluemonday.StrictPolicy()
	})

	cleaned := html.UnescapeString(excerptPolicy.Sanitize(string(body)))
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if utf8.RuneCountInString(cleaned) <= maxBodyExcerpt {
		return cleaned
	}
	runes := []rune(cleaned)
	return strings.TrimSpace(string(runes[:maxBodyExcerpt])) + "…"
}
