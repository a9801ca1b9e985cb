package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envDemoMode        = "DEMO_MODE"
	envDisplayTZ       = "DISPLAY_TIMEZONE"
	envCORSOrigins     = "CORS_ALLOWED_ORIGINS"
	envAdminToken      = "ADMIN_TOKEN"
	envCdBaseURL       = "CRICKETDATA_BASE_URL"
	envCdAPIKey        = "CRICKETDATA_API_KEY"
	envCdDetailPath    = "CRICKETDATA_DETAIL_PATH"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	ProviderCricketdata = "cricketdata"
	ProviderFixture     = "fixture"

	defaultPort            = "4000"
	defaultRefreshInterval = 30 * Duration(time.Second)
	defaultProvider        = ProviderCricketdata
	defaultDemoMode        = true
	defaultDisplayTZ       = "UTC"
	defaultCdBaseURL       = "https://api.cricketdata.org"
	defaultCdDetailPath    = "/matches"
	defaultHTTPTimeout     = 10 * Duration(time.Second)
	defaultMetricsPort     = "9090"
	defaultServiceName     = "matchintel-service"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)
