package store

import (
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
)

// Result is the outcome of one fetch-and-normalize pass for a source.
type Result struct {
	Seq       uint64
	Document  season.Document
	Err       error
	FetchedAt time.Time
}

// Failed reports whether the fetch behind the result failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// DocumentStore keeps the latest committed result per source. Every fetch draws a
// sequence number from Begin; only the most recently issued number may commit, so
// a slow response can never overwrite a newer one.
type DocumentStore struct {
	mu        sync.RWMutex
	next      uint64
	latest    map[string]uint64
	committed map[string]Result
}

// NewDocumentStore constructs an empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		latest:    make(map[string]uint64),
		committed: make(map[string]Result),
	}
}

// Begin issues the next sequence number for source and marks it as the one to keep.
func (s *DocumentStore) Begin(source string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.latest[source] = s.next
	return s.next
}

// Commit stores r for source when r.Seq is still the latest issued number.
// It reports whether the result was applied.
func (s *DocumentStore) Commit(source string, r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Seq == 0 || s.latest[source] != r.Seq {
		return false
	}
	s.committed[source] = r
	return true
}

// Abandon withdraws seq when its fetch was cancelled, so the source no longer waits on it.
// The committed result is left untouched. It reports whether seq was still the latest.
func (s *DocumentStore) Abandon(source string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == 0 || s.latest[source] != seq {
		return false
	}
	if r, ok := s.committed[source]; ok {
		s.latest[source] = r.Seq
	} else {
		delete(s.latest, source)
	}
	return true
}

// Current returns the committed result for source.
func (s *DocumentStore) Current(source string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.committed[source]
	return r, ok
}

// Pending reports whether a fetch for source was issued after the committed result.
func (s *DocumentStore) Pending(source string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest, issued := s.latest[source]
	if !issued {
		return false
	}
	return s.committed[source].Seq != latest
}

// Sources lists every source with a committed result, sorted by name.
func (s *DocumentStore) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.committed))
	for name := range s.committed {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
