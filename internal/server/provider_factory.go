package server

import (
	"log/slog"

	"github.com/preston-bernstein/matchintel-service/internal/config"
	"github.com/preston-bernstein/matchintel-service/internal/metrics"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
	"github.com/preston-bernstein/matchintel-service/internal/providers/fixture"
)

// providerFactory assembles the configured provider behind the demo-data fallback.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) *providers.FallbackProvider {
	base := selectProvider(cfg, f.logger)
	return providers.NewFallbackProvider(base, fixture.New(), cfg.DemoMode, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}
