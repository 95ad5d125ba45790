package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/metrics"
)

// instrumentedProvider records one metrics attempt per fetch and logs failures. It does not retry.
type instrumentedProvider struct {
	inner   DocumentProvider
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewInstrumentedProvider wraps inner with fetch metrics and failure logging.
func NewInstrumentedProvider(inner DocumentProvider, logger *slog.Logger, recorder *metrics.Recorder) DocumentProvider {
	return &instrumentedProvider{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

func (p *instrumentedProvider) FetchDocument(ctx context.Context, source config.Source) (RawDocument, error) {
	start := p.now()
	doc, err := p.inner.FetchDocument(ctx, source)
	elapsed := p.now().Sub(start)
	p.metrics.RecordFetchAttempt(source.Name, elapsed, err)

	if err != nil {
		attrs := []any{slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()), slog.Any("error", err)}
		if loadErr, ok := AsLoadError(err); ok {
			attrs = append(attrs, slog.Int(logging.FieldStatusCode, loadErr.StatusCode))
		}
		logWithSource(ctx, p.logger, slog.LevelWarn, source.Name, "document fetch failed", attrs...)
		return nil, err
	}
	logWithSource(ctx, p.logger, slog.LevelDebug, source.Name, "document fetched",
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return doc, nil
}
