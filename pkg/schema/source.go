package schema

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source says where an order contract lives: a file on disk, an entry of an
// fs.FS, or an HTTP(S) URL.
type Source interface {
	Kind() SourceKind
	Location() string
}

type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

func (s source) String() string {
	return string(s.kind) + ":" + s.location
}

// SourceFromFile points at a contract file on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at a contract inside the fs.FS given to the loader.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL points at a contract served over HTTP. It panics on an
// invalid URL; use ParseSource for user input.
func SourceFromURL(raw string) Source {
	src, err := urlSource(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// ParseSource turns a flag or config value into a Source: http(s) URLs
// become URL sources, anything else a file path.
func ParseSource(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("schema: empty contract location")
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return urlSource(raw)
	}
	return SourceFromFile(raw), nil
}

func urlSource(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("schema: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("schema: URL %q has no host", raw)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}
