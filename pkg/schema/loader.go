package schema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

const maxContractBytes = 4 << 20

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFS sets the filesystem used for SourceKindFS.
func WithFS(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient sets the client used for SourceKindURL.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithFetchTimeout bounds each HTTP fetch. Zero means no limit beyond ctx.
func WithFetchTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader fetches contract documents from files, an fs.FS or HTTP.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{http: http.DefaultClient}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Fetch reads the document behind src.
func (l *Loader) Fetch(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return Document{}, errors.New("schema: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	case SourceKindURL:
		data, err = l.fetchHTTP(ctx, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("schema: fetch %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}

// Load fetches src and compiles it like the package-level Load.
func (l *Loader) Load(ctx context.Context, src Source) (*Schema, error) {
	doc, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	s, err := Load(ctx, doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Location(), err)
	}
	return s, nil
}

// LoadSource is NewLoader(opts...).Load(ctx, src).
func LoadSource(ctx context.Context, src Source, opts ...LoaderOption) (*Schema, error) {
	return NewLoader(opts...).Load(ctx, src)
}

func (l *Loader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxContractBytes))
}
