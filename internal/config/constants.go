package config

const (
	// Finder Defaults
	DefaultFinderConcurrency             = 5
	DefaultFinderTimeoutSecs             = 10
	DefaultFinderMaxDecompressedMB       = 100
	DefaultFinderExtractRobotsCompressed = false

	// HTTP Defaults
	DefaultHTTPUserAgent         = "SitemapFinder/1.0"
	DefaultHTTPMaxContentSizeMB  = 50
	DefaultHTTPMaxRedirects      = 30
	DefaultHTTPRequestsPerSecond = 0
	DefaultHTTPMaxRetries        = 0

	// Output Defaults
	DefaultOutputFile               = "sitemaps_output"
	DefaultOutputFormat             = "json"
	DefaultOutputParquetCompression = "zstd"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Progress Defaults
	DefaultProgressDisplayInterval = 3

	// Resource Limiter Defaults
	DefaultResourceMaxMemoryMB        = 1024
	DefaultResourceSystemMemThreshold = 0.9
	DefaultResourceMaxWaitSecs        = 30

	// ConfigPathEnv overrides the config file search.
	ConfigPathEnv = "SITEMAPFINDER_CONFIG_PATH"
)
