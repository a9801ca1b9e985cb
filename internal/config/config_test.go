package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval %s, got %s", defaultRefreshInterval, cfg.RefreshInterval)
	}
	if cfg.Provider != defaultProvider || !cfg.DemoMode {
		t.Fatalf("expected cricketdata with demo mode, got %s demo=%v", cfg.Provider, cfg.DemoMode)
	}
	if cfg.Cricketdata.BaseURL != defaultCdBaseURL || cfg.Cricketdata.DetailPath != defaultCdDetailPath {
		t.Fatalf("unexpected cricketdata defaults %+v", cfg.Cricketdata)
	}
	if cfg.Cricketdata.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Cricketdata.Timeout)
	}
	if cfg.Metrics.ServiceName != defaultServiceName || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envRefreshInterval, "45s")
	t.Setenv(envProvider, "Fixture")
	t.Setenv(envDemoMode, "false")
	t.Setenv(envDisplayTZ, "Asia/Kolkata")
	t.Setenv(envCORSOrigins, "https://a.example, ,https://b.example")
	t.Setenv(envAdminToken, "admin")
	t.Setenv(envCdBaseURL, "http://example.com/api")
	t.Setenv(envCdAPIKey, "secret-key")
	t.Setenv(envCdDetailPath, "/series")
	t.Setenv(envHTTPTimeout, "3s")
	t.Setenv(envLogLevel, "DEBUG")
	t.Setenv(envLogFormat, "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" || cfg.RefreshInterval != 45*time.Second {
		t.Fatalf("unexpected port/interval %s %s", cfg.Port, cfg.RefreshInterval)
	}
	if cfg.Provider != ProviderFixture || cfg.DemoMode {
		t.Fatalf("unexpected provider settings %s demo=%v", cfg.Provider, cfg.DemoMode)
	}
	if cfg.DisplayTimezone != "Asia/Kolkata" || cfg.AdminToken != "admin" {
		t.Fatalf("unexpected tz/admin %s %s", cfg.DisplayTimezone, cfg.AdminToken)
	}
	if strings.Join(cfg.CORSAllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSAllowedOrigins)
	}
	want := CricketdataConfig{BaseURL: "http://example.com/api", APIKey: "secret-key", DetailPath: "/series", Timeout: 3 * time.Second}
	if cfg.Cricketdata != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Cricketdata)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected overrides to validate, got %v", err)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envRefreshInterval, "not-a-duration")

	cfg, _ := Load()

	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval on invalid value, got %s", cfg.RefreshInterval)
	}
}

func TestLoadNonPositiveDurationFallsBack(t *testing.T) {
	t.Setenv(envRefreshInterval, "0s")

	cfg, _ := Load()

	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("expected default refresh interval on non-positive value, got %s", cfg.RefreshInterval)
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matchintel.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesFileBeforeEnv(t *testing.T) {
	path := writeConfigFile(t, `
port = "7000"
refresh_interval = "1m"
demo_mode = false
cors_allowed_origins = ["https://file.example"]

[cricketdata]
api_key = "from-file"

[logging]
format = "json"
`)
	t.Setenv(envConfigFile, path)
	t.Setenv(envPort, "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7100" {
		t.Fatalf("expected env to win over file, got %s", cfg.Port)
	}
	if cfg.RefreshInterval != time.Minute || cfg.DemoMode {
		t.Fatalf("expected file values, got %s demo=%v", cfg.RefreshInterval, cfg.DemoMode)
	}
	if cfg.Cricketdata.APIKey != "from-file" || cfg.Cricketdata.BaseURL != defaultCdBaseURL {
		t.Fatalf("expected file key with default base url, got %+v", cfg.Cricketdata)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != defaultLogLevel {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if len(cfg.CORSAllowedOrigins) != 1 {
		t.Fatalf("expected file cors origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	t.Setenv(envConfigFile, writeConfigFile(t, `port = `))
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}

	t.Setenv(envConfigFile, writeConfigFile(t, `unknown_key = 1`))
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}

	t.Setenv(envConfigFile, filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"port":      func(c *Config) { c.Port = "abc" },
		"provider":  func(c *Config) { c.Provider = "espn" },
		"timezone":  func(c *Config) { c.DisplayTimezone = "Mars/Olympus" },
		"base url":  func(c *Config) { c.Cricketdata.BaseURL = "not a url" },
		"log level": func(c *Config) { c.Logging.Level = "loud" },
		"format":    func(c *Config) { c.Logging.Format = "xml" },
		"interval":  func(c *Config) { c.RefreshInterval = 0 },
	}
	for name, mutate := range cases {
		cfg := Defaults()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestValidateRequiresKeyWithoutDemoMode(t *testing.T) {
	cfg := Defaults()
	cfg.DemoMode = false
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "APIKey") {
		t.Fatalf("expected api key error, got %v", err)
	}

	cfg.Cricketdata.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config with key, got %v", err)
	}

	cfg = Defaults()
	cfg.DemoMode = false
	cfg.Provider = ProviderFixture
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected fixture provider to need no key, got %v", err)
	}
}
