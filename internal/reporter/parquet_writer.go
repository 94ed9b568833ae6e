package reporter

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/parquet-go/parquet-go"
)

// ParquetDomainResult is the parquet schema of one domain result.
type ParquetDomainResult struct {
	Domain     string   `parquet:"domain"`
	Status     string   `parquet:"status"`
	Error      *string  `parquet:"error,optional"`
	Sitemaps   []string `parquet:"sitemaps,list"`
	NestedURLs []string `parquet:"nested_urls,list"`
	WrittenAt  int64    `parquet:"written_at"` // Unix milliseconds
}

// toParquetResult converts a DomainResult into its parquet row.
func toParquetResult(r models.DomainResult, writtenAt time.Time) ParquetDomainResult {
	row := ParquetDomainResult{
		Domain:     r.Domain,
		Status:     string(r.Status),
		Sitemaps:   r.Sitemaps,
		NestedURLs: r.NestedURLs,
		WrittenAt:  writtenAt.UnixMilli(),
	}
	if r.Error != "" {
		errMsg := r.Error
		row.Error = &errMsg
	}
	return row
}

// ToDomainResult converts a parquet row back into a DomainResult.
func (p ParquetDomainResult) ToDomainResult() models.DomainResult {
	r := models.DomainResult{
		Domain:     p.Domain,
		Status:     models.ResultStatus(p.Status),
		Sitemaps:   p.Sitemaps,
		NestedURLs: p.NestedURLs,
	}
	if r.Sitemaps == nil {
		r.Sitemaps = []string{}
	}
	if r.NestedURLs == nil {
		r.NestedURLs = []string{}
	}
	if p.Error != nil {
		r.Error = *p.Error
	}
	return r
}

func (w *ResultWriter) compressionOption() parquet.WriterOption {
	switch strings.ToLower(w.parquetCompression) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed", "":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		w.logger.Warn().Str("codec", w.parquetCompression).Msg("Unsupported compression codec, defaulting to uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}

func (w *ResultWriter) writeParquet(results []models.DomainResult, path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", path, err)
	}
	defer file.Close()

	writtenAt := time.Now()
	rows := make([]ParquetDomainResult, 0, len(results))
	for _, r := range results {
		rows = append(rows, toParquetResult(r, writtenAt))
	}

	writer := parquet.NewGenericWriter[ParquetDomainResult](file, w.compressionOption())
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}

// ReadParquetResults loads results previously written in parquet format.
func ReadParquetResults(path string) ([]models.DomainResult, error) {
	rows, err := parquet.ReadFile[ParquetDomainResult](path)
	if err != nil {
		return nil, fmt.Errorf("reading parquet file '%s': %w", path, err)
	}

	results := make([]models.DomainResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.ToDomainResult())
	}
	return results, nil
}
