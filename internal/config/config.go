package config

import (
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port               string            `toml:"port" validate:"required,numeric"`
	RefreshInterval    Duration          `toml:"refresh_interval" validate:"gt=0"`
	Provider           string            `toml:"provider" validate:"oneof=cricketdata fixture"`
	DemoMode           bool              `toml:"demo_mode"`
	DisplayTimezone    string            `toml:"display_timezone" validate:"omitempty,timezone"`
	CORSAllowedOrigins []string          `toml:"cors_allowed_origins" validate:"dive,required"`
	AdminToken         string            `toml:"admin_token"`
	Cricketdata        CricketdataConfig `toml:"cricketdata"`
	Metrics            MetricsConfig     `toml:"metrics"`
	Logging            LoggingConfig     `toml:"logging"`
}

// Defaults returns the configuration used when neither a file nor the environment sets a value.
func Defaults() Config {
	return Config{
		Port:            defaultPort,
		RefreshInterval: defaultRefreshInterval,
		Provider:        defaultProvider,
		DemoMode:        defaultDemoMode,
		DisplayTimezone: defaultDisplayTZ,
		Cricketdata:     defaultCricketdata(),
		Metrics:         defaultMetrics(),
		Logging:         defaultLogging(),
	}
}

// Load builds the configuration: defaults, then the optional TOML file named by CONFIG_FILE,
// then environment variables (a .env file in the working directory is loaded first if present).
// The result is not validated; call Validate.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := applyFile(&cfg, envOrDefault(envConfigFile, "")); err != nil {
		return Config{}, err
	}

	cfg.Port = envOrDefault(envPort, cfg.Port)
	cfg.RefreshInterval = durationEnvOrDefault(envRefreshInterval, cfg.RefreshInterval)
	cfg.Provider = strings.ToLower(strings.TrimSpace(envOrDefault(envProvider, cfg.Provider)))
	cfg.DemoMode = boolEnvOrDefault(envDemoMode, cfg.DemoMode)
	cfg.DisplayTimezone = envOrDefault(envDisplayTZ, cfg.DisplayTimezone)
	cfg.CORSAllowedOrigins = listEnvOrDefault(envCORSOrigins, cfg.CORSAllowedOrigins)
	cfg.AdminToken = envOrDefault(envAdminToken, cfg.AdminToken)
	cfg.Cricketdata = loadCricketdata(cfg.Cricketdata)
	cfg.Metrics = loadMetrics(cfg.Metrics)
	cfg.Logging = loadLogging(cfg.Logging)

	return cfg, nil
}
