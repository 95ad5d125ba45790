package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	appseason "github.com/preston-bernstein/cfp-rankings-service/internal/app/season"
	"github.com/preston-bernstein/cfp-rankings-service/internal/config"
	"github.com/preston-bernstein/cfp-rankings-service/internal/http/requestutil"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
	"github.com/preston-bernstein/cfp-rankings-service/internal/pages"
	"github.com/preston-bernstein/cfp-rankings-service/internal/poller"
	"github.com/preston-bernstein/cfp-rankings-service/internal/providers"
	"github.com/preston-bernstein/cfp-rankings-service/internal/store"
)

// SeasonService is the refresh and read surface the handlers need.
type SeasonService interface {
	Sources() []config.Source
	Source(name string) (config.Source, bool)
	Refresh(ctx context.Context, name string) (appseason.Outcome, error)
	RefreshAll(ctx context.Context) ([]appseason.Outcome, error)
	Current(name string) (store.Result, bool)
}

// Handler serves pages, the JSON document API and health probes.
type Handler struct {
	svc           SeasonService
	pages         *pages.Initializer
	logger        *slog.Logger
	refreshOnView bool
	statusFn      func() poller.Status
}

// Options tune a Handler.
type Options struct {
	// RefreshOnView refetches a page's source on every view before composing it.
	RefreshOnView bool
	// PollerStatus backs /ready; nil means readiness follows committed documents.
	PollerStatus func() poller.Status
}

// NewHandler constructs a Handler.
func NewHandler(svc SeasonService, initializer *pages.Initializer, logger *slog.Logger, opts Options) *Handler {
	return &Handler{
		svc:           svc,
		pages:         initializer,
		logger:        logger,
		refreshOnView: opts.RefreshOnView,
		statusFn:      opts.PollerStatus,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn != nil {
		status := h.statusFn()
		if status.IsReady() {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
			return
		}
		msg := status.LastError
		if msg == "" {
			msg = "not ready"
		}
		writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
		return
	}
	for _, src := range h.svc.Sources() {
		if result, ok := h.svc.Current(src.Name); ok && !result.Failed() {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
			return
		}
	}
	writeError(w, r, http.StatusServiceUnavailable, "no document loaded", h.logger)
}

// Page serves one configured page.
func (h *Handler) Page(page pages.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet, h.logger) {
			return
		}
		logger := loggerFromContext(r, h.logger)
		if h.refreshOnView {
			// The page reports a failed fetch itself.
			if _, err := h.svc.Refresh(r.Context(), page.Source); err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn(logger, "refresh on view failed",
					logging.FieldPage, page.Path,
					logging.FieldSource, page.Source,
					"error", err,
				)
			}
		}

		result, committed := h.svc.Current(page.Source)
		c, status := h.pages.Compose(page, result, committed, pages.QueryFrom(r.URL.Query()))
		templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
	}
}

// Document returns the committed canonical document for a source as JSON.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	name := r.PathValue("name")
	if _, ok := h.svc.Source(name); !ok {
		writeError(w, r, http.StatusNotFound, "unknown source", h.logger)
		return
	}
	result, ok := h.svc.Current(name)
	switch {
	case !ok:
		writeError(w, r, http.StatusNotFound, "no document loaded yet", h.logger)
	case result.Failed():
		writeError(w, r, http.StatusBadGateway, failureMessage(result.Err), h.logger)
	default:
		writeJSON(w, http.StatusOK, result.Document, h.logger)
	}
}

// Refresh refetches one source and sends the reader back to the page they came from.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	q := r.URL.Query()
	source := q.Get("source")
	if _, ok := h.svc.Source(source); !ok {
		writeError(w, r, http.StatusBadRequest, "unknown source", h.logger)
		return
	}
	target, ok := h.returnTarget(q.Get("return"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid return path", h.logger)
		return
	}

	outcome, err := h.svc.Refresh(r.Context(), source)
	logger := loggerFromContext(r, h.logger)
	if err != nil {
		logging.Warn(logger, "manual refresh failed", logging.FieldSource, source, "error", err)
	} else {
		logging.Info(logger, "manual refresh", logging.FieldSource, source, logging.FieldSeq, outcome.Seq)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// returnTarget accepts only configured page paths, keeping their query. Empty means "/".
func (h *Handler) returnTarget(raw string) (string, bool) {
	if raw == "" {
		raw = "/"
	}
	path, query, ok := requestutil.SafeReturnPath(raw)
	if !ok {
		return "", false
	}
	if _, ok := h.pages.Page(path); !ok {
		return "", false
	}
	if query == "" {
		return path, true
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return "", false
	}
	return path + "?" + values.Encode(), true
}

func failureMessage(err error) string {
	if loadErr, ok := providers.AsLoadError(err); ok {
		return "upstream answered HTTP " + strconv.Itoa(loadErr.StatusCode)
	}
	if _, ok := providers.AsParseError(err); ok {
		return "upstream document is not valid JSON"
	}
	return "failed to load document"
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}
