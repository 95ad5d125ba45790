package testutil

import (
	"context"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
)

// GoodProvider returns the provided document with no error.
type GoodProvider struct {
	Doc providers.RawDocument
}

func (p GoodProvider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	_ = ctx
	_ = source
	return p.Doc, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	return nil, p.Err
}

// NotifyingProvider returns the document and closes Notify on first fetch.
type NotifyingProvider struct {
	Doc    providers.RawDocument
	Notify chan struct{}
}

func (p *NotifyingProvider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	_ = ctx
	_ = source
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return p.Doc, nil
}
