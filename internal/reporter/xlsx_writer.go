package reporter

import (
	"fmt"

	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the worksheet results are written to.
const XLSXSheet = "Sheet1"

// writeXLSX writes the CSV layout into a workbook. Cells longer than the
// spreadsheet limit are truncated by excelize.
func writeXLSX(results []models.DomainResult, path string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", closeErr)
		}
	}()

	sw, err := f.NewStreamWriter(XLSXSheet)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(CSVHeader)); err != nil {
		return fmt.Errorf("writing XLSX header: %w", err)
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(csvRow(r))); err != nil {
			return fmt.Errorf("writing XLSX row for '%s': %w", r.Domain, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing XLSX rows: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving '%s': %w", path, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
