package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/matchintel-service/internal/http/middleware"
	"github.com/preston-bernstein/matchintel-service/internal/http/requestutil"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
)

// errorBody is the JSON shape of every error response. View carries a renderable
// placeholder for errors the client shows to the user instead of a raw message.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
	View      any    `json:"view,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorView(w, r, status, message, nil, logger)
}

func writeErrorView(w http.ResponseWriter, r *http.Request, status int, message string, view any, logger *slog.Logger) {
	body := errorBody{
		Error:     message,
		RequestID: requestID(r),
		View:      view,
	}
	writeJSON(w, status, body, logger)
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
