package schema

import "errors"

// Document is a fetched contract payload and where it came from.
type Document struct {
	source Source
	raw    []byte
}

func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: contract document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
