package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/matchintel-service/internal/http/requestutil"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
)

// Refresher starts a refresh cycle in the background, reporting false when one is already running.
type Refresher interface {
	Trigger(ctx context.Context) bool
}

// AdminHandler exposes admin-only endpoints (e.g., manual refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin endpoint.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh starts a dashboard refresh cycle out of band.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid and 409 while a cycle is running.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}
	if !h.refresher.Trigger(r.Context()) {
		logging.Info(logger, "admin refresh skipped, cycle in flight")
		writeError(w, r, http.StatusConflict, "refresh already in progress", logger)
		return
	}

	logging.Info(logger, "admin refresh started")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
