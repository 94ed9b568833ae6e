package reporter

import "os"

const (
	// DirPermissions is used for any output directory the writer has to create.
	DirPermissions os.FileMode = 0755
	// FilePermissions is used for result files.
	FilePermissions os.FileMode = 0644

	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatXLSX    = "xlsx"

	// ListSeparator joins list columns in tabular output.
	ListSeparator = ", "
)

// CSVHeader is the column order of tabular output.
var CSVHeader = []string{"Domain", "Status", "Error", "Sitemaps", "URLs Inside Compressed Sitemaps"}
