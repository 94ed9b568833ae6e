package logger

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"

	"github.com/aleister1102/sitemapfinder/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config    LoggerConfig
	factory   *WriterFactory
	converter *ConfigConverter
	err       error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithConfig sets the logger configuration. An invalid level is reported by Build.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	loggerConfig, err := lb.converter.ConvertConfig(cfg)
	loggerConfig.RunID = lb.config.RunID
	loggerConfig.ConsoleOutput = lb.config.ConsoleOutput
	lb.config = loggerConfig
	lb.err = err
	return lb
}

// WithRunID tags every entry with the run ID and, when file logging uses
// subdirectories, moves the log file under runs/<runID>/.
func (lb *LoggerBuilder) WithRunID(runID string) *LoggerBuilder {
	lb.config.RunID = runID
	return lb
}

// WithLevel overrides the configured level.
func (lb *LoggerBuilder) WithLevel(level zerolog.Level) *LoggerBuilder {
	lb.config.Level = level
	return lb
}

// WithConsoleOutput redirects console output.
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.config.ConsoleOutput = w
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers := lb.createWriters()
	if len(writers) == 0 {
		return nil, errors.New("no output writers configured")
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.config.Level).
		With().
		Timestamp()
	if lb.config.RunID != "" {
		ctx = ctx.Str("run_id", lb.config.RunID)
	}
	zerologInstance := ctx.Logger()

	zerolog.SetGlobalLevel(lb.config.Level)
	lb.configureStandardLog(zerologInstance)

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
	}, nil
}

func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return fmt.Errorf("file_path: file path required when file logging enabled")
	}
	if lb.config.MaxSizeMB <= 0 {
		return fmt.Errorf("max_size_mb: max size must be positive, got %d", lb.config.MaxSizeMB)
	}
	return nil
}

func (lb *LoggerBuilder) createWriters() []io.Writer {
	var writers []io.Writer

	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config.Format, lb.config.ConsoleOutput))
	}

	if lb.config.EnableFile {
		writers = append(writers, lb.factory.CreateFileWriter(lb.config))
	}

	return writers
}

// configureStandardLog routes the standard library logger through zerolog.
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
