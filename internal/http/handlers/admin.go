package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/cfp-rankings-service/internal/http/requestutil"
	"github.com/preston-bernstein/cfp-rankings-service/internal/logging"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	svc    SeasonService
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables the endpoints.
func NewAdminHandler(svc SeasonService, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		token:  token,
		logger: logger,
	}
}

// RefreshAll refetches every configured source and returns a per-source summary.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	start := time.Now()
	outcomes, err := h.svc.RefreshAll(r.Context())
	status := "ok"
	if err != nil {
		status = "partial"
		logging.Warn(logger, "admin refresh had failures", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"sources":  outcomes,
		"duration": time.Since(start).Milliseconds(),
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.Int(logging.FieldCount, len(outcomes)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
