package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
)

// RawDocument is a decoded season document before normalization.
type RawDocument = map[string]any

// DocumentProvider fetches one season document. Implementations never retry;
// a failure is reported once as *LoadError or *ParseError.
type DocumentProvider interface {
	FetchDocument(ctx context.Context, source config.Source) (RawDocument, error)
}

// DecodeDocument parses a body holding exactly one JSON object. Anything else is a *ParseError.
func DecodeDocument(source string, body io.Reader) (RawDocument, error) {
	var doc RawDocument
	dec := json.NewDecoder(body)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Source: source, Err: errors.New("unexpected data after JSON document")}
	}
	if doc == nil {
		return nil, &ParseError{Source: source, Err: errors.New("document is not a JSON object")}
	}
	return doc, nil
}
