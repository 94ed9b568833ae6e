package config

// OutputConfig defines where and how results are written.
type OutputConfig struct {
	OutputFile         string `json:"output_file,omitempty" yaml:"output_file,omitempty" validate:"required"`
	Format             string `json:"format,omitempty" yaml:"format,omitempty" validate:"outputformat"`
	ParquetCompression string `json:"parquet_compression,omitempty" yaml:"parquet_compression,omitempty" validate:"omitempty,parquetcompression"`
	PrintSummary       bool   `json:"print_summary" yaml:"print_summary"`
}

// NewDefaultOutputConfig creates default output configuration
func NewDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		OutputFile:         DefaultOutputFile,
		Format:             DefaultOutputFormat,
		ParquetCompression: DefaultOutputParquetCompression,
		PrintSummary:       true,
	}
}
