package reporter

import (
	"fmt"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/rs/zerolog"
)

// ResultWriter serializes a batch of domain results to a file.
type ResultWriter struct {
	logger             zerolog.Logger
	directoryMgr       *DirectoryManager
	parquetCompression string
}

// ResultWriterBuilder provides a fluent interface for creating a ResultWriter
type ResultWriterBuilder struct {
	logger             zerolog.Logger
	parquetCompression string
}

// NewResultWriterBuilder creates a new ResultWriterBuilder
func NewResultWriterBuilder(logger zerolog.Logger) *ResultWriterBuilder {
	return &ResultWriterBuilder{
		logger:             logger.With().Str("component", "ResultWriter").Logger(),
		parquetCompression: "zstd",
	}
}

// WithParquetCompression sets the parquet codec: none, snappy, gzip or zstd.
func (b *ResultWriterBuilder) WithParquetCompression(codec string) *ResultWriterBuilder {
	b.parquetCompression = codec
	return b
}

// Build creates the ResultWriter
func (b *ResultWriterBuilder) Build() *ResultWriter {
	return &ResultWriter{
		logger:             b.logger,
		directoryMgr:       NewDirectoryManager(b.logger),
		parquetCompression: b.parquetCompression,
	}
}

// NewResultWriter creates a ResultWriter with default settings.
func NewResultWriter(logger zerolog.Logger) *ResultWriter {
	return NewResultWriterBuilder(logger).Build()
}

// OutputPath returns the file name results are written to: <basePath>.<format>.
func OutputPath(basePath, format string) string {
	return basePath + "." + strings.ToLower(format)
}

// WriteResults writes results in the given format to <basePath>.<format> and
// returns the path written.
func (w *ResultWriter) WriteResults(results []models.DomainResult, format, basePath string) (string, error) {
	format = strings.ToLower(format)
	path := OutputPath(basePath, format)

	if err := w.directoryMgr.EnsureParentDirectory(path); err != nil {
		return "", err
	}

	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(results, path)
	case FormatCSV:
		err = writeCSV(results, path)
	case FormatParquet:
		err = w.writeParquet(results, path)
	case FormatXLSX:
		err = writeXLSX(results, path)
	default:
		return "", fmt.Errorf("unsupported output format '%s'", format)
	}
	if err != nil {
		w.logger.Error().Err(err).Str("path", path).Str("format", format).Msg("Failed to write results")
		return "", err
	}

	w.logger.Info().Str("path", path).Str("format", format).Int("records", len(results)).Msg("Results written")
	return path, nil
}
