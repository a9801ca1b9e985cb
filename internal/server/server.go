package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rs/cors"

	appmatches "github.com/preston-bernstein/matchintel-service/internal/app/matches"
	"github.com/preston-bernstein/matchintel-service/internal/config"
	httpserver "github.com/preston-bernstein/matchintel-service/internal/http"
	"github.com/preston-bernstein/matchintel-service/internal/http/handlers"
	"github.com/preston-bernstein/matchintel-service/internal/http/middleware"
	"github.com/preston-bernstein/matchintel-service/internal/http/ws"
	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/metrics"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
	"github.com/preston-bernstein/matchintel-service/internal/refresh"
	"github.com/preston-bernstein/matchintel-service/internal/store"
	"github.com/preston-bernstein/matchintel-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	matches       *appmatches.Service
	hub           *ws.Hub
	httpServer    httpServer
	metricsServer httpServer
	controller    Controller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, refresh controller and live stream.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

// newServerWithMetrics wires every component. A nil provider is built from cfg; an injected one is used as-is.
func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	}

	opts := refresh.Options{
		Interval: cfg.RefreshInterval,
		Location: timeutil.ResolveLocation(cfg.DisplayTimezone),
	}
	memoryStore := store.NewMemoryStore()
	svc := appmatches.NewService(memoryStore, provider)
	hub := ws.NewHub(provider, logger, recorder, ws.Config{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Detail:         opts,
	})
	ctrl := refresh.New(provider, memoryStore, hub, logger, recorder, opts)
	hub.SetSource(ctrl)

	httpSrv := buildHTTPServer(cfg, svc, ctrl, hub, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		matches:       svc,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		controller:    ctrl,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, ctrl Controller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		controller: ctrl,
	}
}

// dashboardController is what the HTTP layer needs from the refresh controller.
type dashboardController interface {
	handlers.Dashboard
	handlers.Refresher
}

func buildHTTPServer(cfg config.Config, svc handlers.MatchService, ctrl dashboardController, hub *ws.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(svc, ctrl, logger)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(ctrl, cfg.AdminToken, logger)
	}
	var stream http.Handler
	if hub != nil {
		stream = http.HandlerFunc(hub.HandleWS)
	}
	router := httpserver.NewRouter(handler, admin, stream)

	wrapped := middleware.LoggingMiddleware(logger, recorder, newCORS(cfg.CORSAllowedOrigins).Handler(router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// newCORS allows every origin when none are configured.
func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
}

// Run starts the live stream, the refresh controller and the HTTP server, then waits for
// context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.hub != nil {
		go func() { _ = s.hub.Run(ctx) }()
	}
	s.startServer(stop)
	s.controller.Start(ctx)

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

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.controller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresh controller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
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
