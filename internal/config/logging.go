package config

import "strings"

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

func defaultLogging() LoggingConfig {
	return LoggingConfig{
		Level:  defaultLogLevel,
		Format: defaultLogFormat,
	}
}

func loadLogging(base LoggingConfig) LoggingConfig {
	return LoggingConfig{
		Level:  strings.ToLower(strings.TrimSpace(envOrDefault(envLogLevel, base.Level))),
		Format: strings.ToLower(strings.TrimSpace(envOrDefault(envLogFormat, base.Format))),
	}
}
