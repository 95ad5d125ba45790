package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	httpserver "github.com/preston-bernstein/cfp-rankings-service/internal/http"
	"github.com/preston-bernstein/cfp-rankings-service/internal/http/handlers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/http/middleware"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/metrics"
	"github.com/preston-bernstein/cfp-rankings-service/internal/pages"
	"github.com/preston-bernstein/cfp-rankings-service/internal/poller"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers/factory"
	"github.com/preston-bernstein/cfp-rankings-service/internal/render"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
	"github.com/preston-bernstein/cfp-rankings-service/internal/watcher"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *appseason.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	watcher       Watcher
	metricsStop   func(context.Context) error
}

// New loads the site description and wires the default provider, poller and watcher.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		return nil, err
	}
	return newServerWithMetrics(cfg, site, logger, nil, nil)
}

// newServerWithMetrics builds every component. A nil provider is built from cfg.
func newServerWithMetrics(cfg config.Config, site config.Site, logger *slog.Logger, provider providers.DocumentProvider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = factory.New(logger, recorder).Build(cfg)
	} else {
		provider = providers.NewInstrumentedProvider(provider, logger, recorder)
	}
	svc := appseason.NewService(store.NewDocumentStore(), provider, site, logger, recorder)

	var plr Poller
	if cfg.PollEnabled {
		plr = poller.New(svc, logger, recorder, cfg.PollInterval)
	}
	var w Watcher
	if cfg.WatchDataDir && cfg.Provider == config.ProviderFile {
		w = watcher.New(cfg.DataDir, site, svc, logger, watchDebounce)
	}

	httpSrv, err := buildHTTPServer(cfg, site, svc, logger, recorder, plr)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		watcher:       w,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appseason.Service, httpSrv httpServer, plr Poller, w Watcher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		poller:     plr,
		watcher:    w,
	}
}

func buildHTTPServer(cfg config.Config, site config.Site, svc *appseason.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) (httpServer, error) {
	initializer, err := pages.NewInitializer(site, render.ServerLinks(""), "/refresh")
	if err != nil {
		return nil, fmt.Errorf("build pages: %w", err)
	}
	if team, ok := initializer.TeamPage(); ok {
		initializer = initializer.WithLinks(render.ServerLinks(team.Path))
	}

	opts := handlers.Options{RefreshOnView: cfg.RefreshOnView}
	if plr != nil {
		opts.PollerStatus = plr.Status
	}
	handler := handlers.NewHandler(svc, initializer, logger, opts)

	// The admin endpoint is only mounted when a token is configured.
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin, initializer.Pages())
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}, nil
}

// Run starts the background refreshers and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}
	if s.watcher != nil {
		if err := s.watcher.Start(ctx); err != nil {
			logging.Warn(s.logger, "data dir watcher disabled", "error", err)
			s.watcher = nil
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			logging.Warn(s.logger, "failed to stop watcher", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
