// Package factory assembles the document provider the binaries share.
package factory

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/metrics"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers/filedoc"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers/httpdoc"
)

// Factory builds providers with the shared instrumentation wrapper.
type Factory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Factory. Both arguments may be nil.
func New(logger *slog.Logger, recorder *metrics.Recorder) Factory {
	return Factory{logger: logger, metrics: recorder}
}

// Build returns the provider for cfg. Sources that declare an absolute URL always go over HTTP;
// the rest follow PROVIDER.
func (f Factory) Build(cfg config.Config) providers.DocumentProvider {
	r := &router{
		http: httpdoc.NewClient(httpdoc.Config{BaseURL: cfg.DataBaseURL}),
		file: filedoc.New(cfg.DataDir),
	}
	r.fallback = r.file
	if cfg.Provider == config.ProviderHTTP {
		if cfg.DataBaseURL == "" {
			logWarn(f.logger, "http provider without DATA_BASE_URL; only sources with a url will load")
		}
		r.fallback = r.http
	}
	return providers.NewInstrumentedProvider(r, f.logger, f.metrics)
}

type router struct {
	http     providers.DocumentProvider
	file     providers.DocumentProvider
	fallback providers.DocumentProvider
}

func (r *router) FetchDocument(ctx context.Context, source config.Source) (providers.RawDocument, error) {
	if source.URL != "" {
		return r.http.FetchDocument(ctx, source)
	}
	return r.fallback.FetchDocument(ctx, source)
}

func logWarn(logger *slog.Logger, msg string) {
	if logger != nil {
		logger.Warn(msg)
	}
}
