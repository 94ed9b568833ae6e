package reporter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

func writeJSON(results []models.DomainResult, path string) error {
	if results == nil {
		results = []models.DomainResult{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("writing '%s': %w", path, err)
	}
	return nil
}
