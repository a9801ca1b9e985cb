package http

import (
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/matchintel-service/internal/http/handlers"
)

// NewRouter registers HTTP routes. admin and stream are optional.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, stream nethttp.Handler) *mux.Router {
	notFound := nethttp.HandlerFunc(handler.NotFound)
	notAllowed := nethttp.HandlerFunc(handler.MethodNotAllowed)

	router := mux.NewRouter()
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notAllowed

	router.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	router.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = notFound
	api.MethodNotAllowedHandler = notAllowed
	api.HandleFunc("/dashboard", handler.Dashboard).Methods(nethttp.MethodGet)
	api.HandleFunc("/matches", handler.Matches).Methods(nethttp.MethodGet)
	api.HandleFunc("/matches/{id}", handler.MatchByPath).Methods(nethttp.MethodGet)
	api.HandleFunc("/match", handler.MatchByQuery).Methods(nethttp.MethodGet)

	if admin != nil {
		router.HandleFunc("/admin/refresh", admin.Refresh).Methods(nethttp.MethodPost)
	}
	if stream != nil {
		router.Handle("/ws", stream).Methods(nethttp.MethodGet)
	}
	return router
}
