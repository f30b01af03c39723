package logger

import (
	"github.com/henrykdz/pathment/internal/config"
)

// ConvertConfig converts application config to logger config. An invalid
// level falls back to info and is reported through the returned error.
func ConvertConfig(cfg config.LogConfig) (LoggerConfig, error) {
	level, err := ParseLevel(cfg.LogLevel)

	return LoggerConfig{
		Level:         level,
		Format:        ParseFormat(cfg.LogFormat),
		EnableConsole: true,
		EnableFile:    cfg.LogFile != "",
		FilePath:      cfg.LogFile,
		MaxSizeMB:     orDefault(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB),
		MaxBackups:    orDefault(cfg.MaxLogBackups, config.DefaultMaxLogBackups),
		NoColor:       cfg.NoColor,
	}, err
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
