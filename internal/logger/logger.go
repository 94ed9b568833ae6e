package logger

import (
	"github.com/aleister1102/sitemapfinder/internal/config"
	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the effective configuration.
func (l *Logger) Config() LoggerConfig {
	return l.config
}

// New creates a zerolog logger from the application log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithConfig(cfg).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}

// NewWithRunID creates a logger whose entries and log file are tied to one run.
func NewWithRunID(cfg config.LogConfig, runID string) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().
		WithRunID(runID).
		WithConfig(cfg).
		Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
