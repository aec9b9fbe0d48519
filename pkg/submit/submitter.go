package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/order"
	"github.com/goliatone/go-orderform/pkg/schema"
)

const (
	// DefaultEndpoint is the order API base URL used when none is configured.
	DefaultEndpoint = "http://localhost:9009"

	maxResponseBytes = 64 << 10
)

// Submitter sends one draft to the order API.
type Submitter interface {
	Submit(ctx context.Context, draft order.Draft) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, draft order.Draft) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, draft order.Draft) error {
	return fn(ctx, draft)
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the API base URL (scheme and host, optional prefix).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithPath overrides the submission path appended to the endpoint.
func WithPath(path string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, "/") {
			trimmed = "/" + trimmed
		}
		c.path = trimmed
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each request. Zero leaves the request unbounded, so it
// runs until the caller's context is done.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithFieldNames sets the draft field names used to map API error payloads.
func WithFieldNames(fields []string) Option {
	return func(c *Client) {
		if len(fields) > 0 {
			c.fields = append([]string(nil), fields...)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is the HTTP Submitter.
type Client struct {
	endpoint   string
	path       string
	httpClient *http.Client
	timeout    time.Duration
	fields     []string
	logger     *zap.Logger
}

var _ Submitter = (*Client)(nil)

// New constructs a Client posting to DefaultEndpoint + schema.OrderPath
// unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		path:       schema.OrderPath,
		httpClient: http.DefaultClient,
		fields:     []string{"fullName", "size", "toppings"},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// URL returns the full submission URL.
func (c *Client) URL() string {
	return strings.TrimRight(c.endpoint, "/") + c.path
}

// Submit POSTs the draft as JSON. A 2xx status is success; a 422 carrying an
// "errors" object becomes a *schema.ValidationError; every other outcome is a
// *TransportError.
func (c *Client) Submit(ctx context.Context, draft order.Draft) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("submit: encode draft: %w", err)
	}

	url := c.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("order submission failed",
			zap.String("url", url),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return &TransportError{Method: http.MethodPost, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.logger.Debug("order submission answered",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if readErr != nil {
		return &TransportError{Method: http.MethodPost, URL: url, StatusCode: resp.StatusCode, Err: readErr}
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		if verr := c.validationError(body); verr != nil {
			return verr
		}
	}

	c.logger.Warn("order submission rejected",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode))
	return &TransportError{
		Method:     http.MethodPost,
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       excerpt(body),
		Err:        errors.New(http.StatusText(resp.StatusCode)),
	}
}

type errorPayload struct {
	Errors map[string]json.RawMessage `json:"errors"`
}

func (c *Client) validationError(body []byte) *schema.ValidationError {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Errors) == 0 {
		return nil
	}

	messages := make(map[string][]string, len(payload.Errors))
	for path, raw := range payload.Errors {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			messages[path] = list
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			messages[path] = []string{single}
		}
	}

	issues := schema.MapErrorPayload(c.fields, messages).Issues()
	if len(issues) == 0 {
		return nil
	}
	return &schema.ValidationError{Issues: issues}
}
