package orderform

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "orderform.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "--color-brand") {
		t.Fatalf("expected stylesheet to use theme variables")
	}
}

func TestEmbeddedTemplatesIncludeLayout(t *testing.T) {
	for _, name := range []string{"layout.tpl", "home.tpl", "order.tpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
}

func TestValidateEmptyDraft(t *testing.T) {
	result := Validate(Draft{})
	if result.Valid {
		t.Fatalf("expected empty draft to be invalid")
	}
	errs := result.Errors()
	if errs["fullName"] != "Full name required" || errs["size"] != "Size required" {
		t.Fatalf("unexpected errors: %#v", errs)
	}
}

func TestNewSubmitterURL(t *testing.T) {
	if got := NewSubmitter("http://orders.test/").URL(); got != "http://orders.test/api/order" {
		t.Fatalf("unexpected submit URL %q", got)
	}
}

func TestNewComponentServesForm(t *testing.T) {
	rec := httptest.NewRecorder()
	NewComponent().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
