package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/matchintel-service/internal/config"
	"github.com/preston-bernstein/matchintel-service/internal/providers"
	"github.com/preston-bernstein/matchintel-service/internal/providers/cricketdata"
	"github.com/preston-bernstein/matchintel-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderCricketdata, "":
		return cricketdata.NewClient(cricketdata.Config{
			BaseURL:    cfg.Cricketdata.BaseURL,
			APIKey:     cfg.Cricketdata.APIKey,
			Timeout:    cfg.Cricketdata.Timeout,
			DetailPath: cfg.Cricketdata.DetailPath,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
