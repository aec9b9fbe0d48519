// Package testsupport provides a fake order API for tests that exercise the
// real submit client.
package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// Response is one scripted answer of the fake API.
type Response struct {
	Status int
	Body   string
}

// Created is the default answer.
var Created = Response{Status: http.StatusCreated, Body: `{"message":"ok"}`}

// Rejected builds a 422 answer carrying per-field messages.
func Rejected(errors map[string]string) Response {
	payload, _ := json.Marshal(map[string]any{"errors": errors})
	return Response{Status: http.StatusUnprocessableEntity, Body: string(payload)}
}

// OrderAPI records every draft POSTed to /api/order and answers with the
// scripted responses in turn; the last one repeats.
type OrderAPI struct {
	*httptest.Server

	mu        sync.Mutex
	drafts    []order.Draft
	responses []Response
}

// NewOrderAPI starts the fake API and closes it when the test ends.
func NewOrderAPI(t testing.TB, responses ...Response) *OrderAPI {
	t.Helper()
	api := &OrderAPI{responses: responses}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

func (a *OrderAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != schema.OrderPath {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var draft order.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.drafts = append(a.drafts, draft)
	resp := Created
	if n := len(a.responses); n > 0 {
		idx := len(a.drafts) - 1
		if idx >= n {
			idx = n - 1
		}
		resp = a.responses[idx]
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write([]byte(resp.Body))
}

// Drafts returns the drafts received so far.
func (a *OrderAPI) Drafts() []order.Draft {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]order.Draft, len(a.drafts))
	for i, draft := range a.drafts {
		out[i] = draft.Clone()
	}
	return out
}

// Endpoint is the base URL to configure the submit client with.
func (a *OrderAPI) Endpoint() string {
	return a.URL
}
