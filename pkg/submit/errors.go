package submit

import (
	"fmt"
	"net/http"
	"strings"
)

// TransportError reports a network failure or an unexpected API status.
type TransportError struct {
	Method   string
	URL      string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Body is a sanitized, truncated excerpt of the response body.
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "submit: transport error"
	}
	prefix := fmt.Sprintf("submit: %s %s", e.Method, e.URL)
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return prefix + ": " + e.Err.Error()
	case e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", prefix, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: status %d", prefix, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Message returns the text shown to the person placing the order.
func (e *TransportError) Message() string {
	if e == nil || e.StatusCode == 0 {
		return "Order could not be submitted: the order service is unreachable. Please try again."
	}
	status := strings.TrimSpace(fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode)))
	if e.Body != "" {
		return fmt.Sprintf("Order could not be submitted (%s: %s). Please try again.", status, e.Body)
	}
	return fmt.Sprintf("Order could not be submitted (%s). Please try again.", status)
}
