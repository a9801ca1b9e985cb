package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matchintel-service/internal/domain/matches"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
	"github.com/preston-bernstein/matchintel-service/internal/refresh"
)

// MatchService is the read side the handlers depend on.
type MatchService interface {
	Snapshot() matches.Snapshot
	Details(ctx context.Context, id string) (matches.Match, error)
}

// Dashboard exposes the refresh controller's rendered view and health.
type Dashboard interface {
	View() presenter.DashboardView
	Status() refresh.Status
	Location() *time.Location
}

// Handler wires HTTP routes to the match service and dashboard controller.
type Handler struct {
	svc    MatchService
	dash   Dashboard
	logger *slog.Logger
}

// NewHandler constructs a Handler. dash may be nil, in which case the service always reports ready.
func NewHandler(svc MatchService, dash Dashboard, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		dash:   dash,
		logger: logger,
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

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.dash == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.dash.Status()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"state":  string(status.State),
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Dashboard returns the rendered dashboard for the current snapshot.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.dash == nil {
		writeError(w, r, http.StatusServiceUnavailable, "dashboard not configured", h.logger)
		return
	}
	view := h.dash.View()
	logging.Info(loggerFromContext(r, h.logger), "served dashboard",
		logging.FieldCount, len(view.Today.Cards)+len(view.Upcoming.Cards),
		logging.FieldLive, view.Counters.Live,
	)
	writeJSON(w, http.StatusOK, view, h.logger)
}

// Matches returns the raw normalized snapshot.
func (h *Handler) Matches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Snapshot(), h.logger)
}

// MatchByQuery renders a single match addressed by the id query parameter.
func (h *Handler) MatchByQuery(w http.ResponseWriter, r *http.Request) {
	h.matchDetail(w, r, r.URL.Query().Get("id"))
}

// MatchByPath renders a single match addressed by the {id} route variable.
func (h *Handler) MatchByPath(w http.ResponseWriter, r *http.Request) {
	h.matchDetail(w, r, mux.Vars(r)["id"])
}

// NotFound answers unknown routes with the standard error body.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) matchDetail(w http.ResponseWriter, r *http.Request, rawID string) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	id := strings.TrimSpace(rawID)
	if err := validateMatchID(id); err != nil {
		logging.Warn(logger, "match detail rejected", logging.FieldMatchID, rawID, "reason", err.Error())
		writeErrorView(w, r, http.StatusBadRequest, err.Error(), presenter.MissingDetail(), h.logger)
		return
	}

	m, err := h.svc.Details(r.Context(), id)
	if err != nil {
		status, msg := detailErrorStatus(err)
		logging.Warn(logger, "match detail failed",
			logging.FieldMatchID, id,
			logging.FieldStatusCode, status,
			"error", err,
		)
		if status == http.StatusBadRequest {
			writeErrorView(w, r, status, msg, presenter.MissingDetail(), h.logger)
			return
		}
		writeErrorView(w, r, status, msg, presenter.DetailFailure(id), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, presenter.Detail(m, h.location()), h.logger)
}

func (h *Handler) location() *time.Location {
	if h.dash == nil {
		return time.UTC
	}
	return h.dash.Location()
}

func detailErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, providers.ErrMissingMatchID):
		return http.StatusBadRequest, errMatchIDRequired.Error()
	case errors.Is(err, providers.ErrMatchNotFound):
		return http.StatusNotFound, "match not found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request cancelled"
	default:
		return http.StatusBadGateway, "failed to load match"
	}
}
