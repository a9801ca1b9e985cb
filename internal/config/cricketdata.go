package config

// CricketdataConfig controls how we talk to the cricketdata API.
type CricketdataConfig struct {
	BaseURL    string   `toml:"base_url" validate:"required,url"`
	APIKey     string   `toml:"api_key"`
	DetailPath string   `toml:"detail_path"`
	Timeout    Duration `toml:"timeout" validate:"gt=0"`
}

func defaultCricketdata() CricketdataConfig {
	return CricketdataConfig{
		BaseURL:    defaultCdBaseURL,
		DetailPath: defaultCdDetailPath,
		Timeout:    defaultHTTPTimeout,
	}
}

func loadCricketdata(base CricketdataConfig) CricketdataConfig {
	return CricketdataConfig{
		BaseURL:    envOrDefault(envCdBaseURL, base.BaseURL),
		APIKey:     envOrDefault(envCdAPIKey, base.APIKey),
		DetailPath: envOrDefault(envCdDetailPath, base.DetailPath),
		Timeout:    durationEnvOrDefault(envHTTPTimeout, base.Timeout),
	}
}
