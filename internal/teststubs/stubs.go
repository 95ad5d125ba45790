package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
)

// Response is one scripted fetch outcome. When Wait is set the fetch blocks until it closes.
type Response struct {
	Doc  providers.RawDocument
	Err  error
	Wait <-chan struct{}
}

// StubProvider is a test double for providers.DocumentProvider. Calls consume Responses
// in order; once exhausted the last response repeats.
type StubProvider struct {
	Responses []Response
	Calls     atomic.Int32
	// Started receives the zero-based call index as each fetch begins, when non-nil.
	Started chan int

	mu      sync.Mutex
	sources []string
}

// FetchDocument returns the next scripted response while tracking calls.
func (s *StubProvider) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	idx := int(s.Calls.Add(1)) - 1

	s.mu.Lock()
	s.sources = append(s.sources, source.Name)
	var resp Response
	if n := len(s.Responses); n > 0 {
		if idx < n {
			resp = s.Responses[idx]
		} else {
			resp = s.Responses[n-1]
		}
	}
	s.mu.Unlock()

	if s.Started != nil {
		s.Started <- idx
	}
	if resp.Wait != nil {
		select {
		case <-resp.Wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resp.Doc, resp.Err
}

// FetchedSources returns the source names seen so far, in call order.
func (s *StubProvider) FetchedSources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out
}
