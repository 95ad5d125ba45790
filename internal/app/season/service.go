// Package season coordinates fetching, normalizing and committing season documents.
package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	domainseason "github.com/preston-bernstein/cfp-rankings-service/internal/domain/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/metrics"
	"github.com/preston-bernstein/cfp-rankings-service/internal/normalize"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
)

// ErrUnknownSource is returned for a source name the site config does not declare.
var ErrUnknownSource = errors.New("unknown source")

// Store defines the sequencing contract the service commits through.
type Store interface {
	Begin(source string) uint64
	Commit(source string, r store.Result) bool
	Abandon(source string, seq uint64) bool
	Current(source string) (store.Result, bool)
}

// Outcome summarizes one refresh.
type Outcome struct {
	Source   string `json:"source"`
	Seq      uint64 `json:"seq"`
	Applied  bool   `json:"applied"`
	Rankings int    `json:"rankings"`
	Error    string `json:"error,omitempty"`
}

// Service runs Begin, fetch, normalize and Commit for configured sources.
type Service struct {
	store    Store
	provider providers.DocumentProvider
	sources  []config.Source
	bracket  *domainseason.Bracket
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService constructs a Service for the sources declared in site.
func NewService(st Store, provider providers.DocumentProvider, site config.Site, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		store:    st,
		provider: provider,
		sources:  append([]config.Source(nil), site.Sources...),
		bracket:  bracketOverride(site.Bracket),
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Sources returns the configured sources in declaration order.
func (s *Service) Sources() []config.Source {
	out := make([]config.Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Source looks up a configured source by name.
func (s *Service) Source(name string) (config.Source, bool) {
	for _, src := range s.sources {
		if src.Name == name {
			return src, true
		}
	}
	return config.Source{}, false
}

// Refresh fetches and normalizes one source, committing the result unless a newer
// refresh for the same source was issued meanwhile. The returned error is the fetch error.
func (s *Service) Refresh(ctx context.Context, name string) (Outcome, error) {
	src, ok := s.Source(name)
	if !ok {
		return Outcome{Source: name, Error: ErrUnknownSource.Error()}, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	seq := s.store.Begin(name)
	result := store.Result{Seq: seq}
	raw, err := s.provider.FetchDocument(ctx, src)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// A cancelled caller never replaces what other readers see.
		s.store.Abandon(name, seq)
		logging.Info(s.logger, "refresh abandoned",
			logging.FieldSource, name,
			logging.FieldSeq, seq,
		)
		return Outcome{Source: name, Seq: seq, Error: ctxErr.Error()}, ctxErr
	}
	result.FetchedAt = s.now()
	if err != nil {
		result.Err = err
	} else {
		result.Document = s.applyBracket(normalize.Document(raw))
	}

	outcome := Outcome{Source: name, Seq: seq, Rankings: len(result.Document.Rankings)}
	if err != nil {
		outcome.Error = err.Error()
	}

	outcome.Applied = s.store.Commit(name, result)
	if !outcome.Applied {
		if s.metrics != nil {
			s.metrics.RecordStaleDiscard(name)
		}
		logging.Info(s.logger, "discarded stale refresh",
			logging.FieldSource, name,
			logging.FieldSeq, seq,
		)
		return outcome, err
	}

	if err != nil {
		logging.Warn(s.logger, "refresh failed",
			logging.FieldSource, name,
			logging.FieldSeq, seq,
			"error", err,
		)
		return outcome, err
	}
	logging.Info(s.logger, "refresh committed",
		logging.FieldSource, name,
		logging.FieldSeq, seq,
		logging.FieldCount, outcome.Rankings,
	)
	return outcome, nil
}

// RefreshAll refreshes every configured source concurrently. A failing source does not
// cancel the others; every failure is joined into the returned error.
func (s *Service) RefreshAll(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, len(s.sources))
	errs := make([]error, len(s.sources))

	var g errgroup.Group
	for i, src := range s.sources {
		g.Go(func() error {
			outcomes[i], errs[i] = s.Refresh(ctx, src.Name)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes, errors.Join(errs...)
}

// Current returns the committed result for a source.
func (s *Service) Current(name string) (store.Result, bool) {
	return s.store.Current(name)
}

// Document returns the committed document when the latest committed fetch succeeded.
func (s *Service) Document(name string) (domainseason.Document, bool) {
	r, ok := s.store.Current(name)
	if !ok || r.Failed() {
		return domainseason.Document{}, false
	}
	return r.Document, true
}

func (s *Service) applyBracket(doc domainseason.Document) domainseason.Document {
	if s.bracket != nil {
		doc.Bracket = *s.bracket
	}
	return doc
}

func bracketOverride(cfg *config.BracketConfig) *domainseason.Bracket {
	if cfg == nil || len(cfg.FirstRound) == 0 {
		return nil
	}
	b := domainseason.Bracket{Byes: append([]int(nil), cfg.Byes...)}
	for _, pr := range cfg.FirstRound {
		b.FirstRound = append(b.FirstRound, domainseason.Pairing{High: pr.High, Low: pr.Low})
	}
	return &b
}
