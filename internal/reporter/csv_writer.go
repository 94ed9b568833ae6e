package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

func writeCSV(results []models.DomainResult, path string) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePermissions)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing '%s': %w", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing CSV row for '%s': %w", r.Domain, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(r models.DomainResult) []string {
	return []string{
		r.Domain,
		string(r.Status),
		r.Error,
		strings.Join(r.Sitemaps, ListSeparator),
		strings.Join(r.NestedURLs, ListSeparator),
	}
}
