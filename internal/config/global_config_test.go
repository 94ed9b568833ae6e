package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/prober"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.FinderConfig.Concurrency)
	assert.Equal(t, 10, cfg.FinderConfig.TimeoutSecs)
	assert.Equal(t, prober.DefaultSitemapPaths, cfg.FinderConfig.SitemapPaths)
	assert.False(t, cfg.FinderConfig.ExtractRobotsCompressed)
	assert.Equal(t, "SitemapFinder/1.0", cfg.HTTPConfig.UserAgent)
	assert.Equal(t, "sitemaps_output", cfg.OutputConfig.OutputFile)
	assert.Equal(t, "json", cfg.OutputConfig.Format)
	assert.True(t, cfg.ResourceLimiterConfig.Enabled)
	assert.Equal(t, 30*time.Second, cfg.ResourceLimiterConfig.MaxWait())
	assert.NoError(t, ValidateConfig(cfg))
}

func TestNewDefaultFinderConfig_CopiesCatalog(t *testing.T) {
	cfg := NewDefaultFinderConfig()
	cfg.SitemapPaths[0] = "/changed.xml"
	assert.Equal(t, "/sitemap.xml", prober.DefaultSitemapPaths[0])
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Chdir(t.TempDir())

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"finder_config": {"concurrency": 12, "extract_robots_compressed": true},
		"log_config": {"log_level": "debug"},
		"output_config": {"format": "csv"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 12, cfg.FinderConfig.Concurrency)
	assert.True(t, cfg.FinderConfig.ExtractRobotsCompressed)
	assert.Equal(t, 10, cfg.FinderConfig.TimeoutSecs, "unset values keep their defaults")
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "csv", cfg.OutputConfig.Format)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
finder_config:
  timeout_secs: 3
  sitemap_paths:
    - /sitemap.xml
    - /custom-sitemap.xml.gz
http_config:
  requests_per_second: 2.5
  max_retries: 2
output_config:
  format: parquet
  parquet_compression: snappy
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.FinderConfig.TimeoutSecs)
	assert.Equal(t, []string{"/sitemap.xml", "/custom-sitemap.xml.gz"}, cfg.FinderConfig.SitemapPaths)
	assert.InDelta(t, 2.5, cfg.HTTPConfig.RequestsPerSecond, 0.0001)
	assert.Equal(t, 2, cfg.HTTPConfig.MaxRetries)
	assert.Equal(t, "parquet", cfg.OutputConfig.Format)
	assert.Equal(t, "snappy", cfg.OutputConfig.ParquetCompression)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_EnvPath(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("finder_config:\n  concurrency: 9\n"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 9, cfg.FinderConfig.Concurrency)
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"finder_config": {},}`), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
finder_config:
  concurrency: 3
    invalid_indent: value
`
	require.NoError(t, os.WriteFile(configFile, []byte(invalidYAML), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	t.Run("flag wins even when missing", func(t *testing.T) {
		assert.Equal(t, "/does/not/exist.yaml", GetConfigPath("/does/not/exist.yaml"))
	})

	t.Run("cwd config.yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}"), 0644))
		t.Chdir(dir)
		assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath(""))
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "/does/not/exist.yaml")
		t.Chdir(t.TempDir())
		assert.NotEqual(t, "/does/not/exist.yaml", GetConfigPath(""))
	})
}

func TestIsYAMLFile(t *testing.T) {
	assert.True(t, isYAMLFile(".yaml"))
	assert.True(t, isYAMLFile(".yml"))
	assert.False(t, isYAMLFile(".json"))
	assert.False(t, isYAMLFile(""))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{"bad log level", func(c *GlobalConfig) { c.LogConfig.LogLevel = "loud" }, "loglevel"},
		{"bad log format", func(c *GlobalConfig) { c.LogConfig.LogFormat = "xml" }, "logformat"},
		{"bad output format", func(c *GlobalConfig) { c.OutputConfig.Format = "xlsx" }, "outputformat"},
		{"bad parquet codec", func(c *GlobalConfig) { c.OutputConfig.ParquetCompression = "lz4" }, "parquetcompression"},
		{"relative sitemap path", func(c *GlobalConfig) { c.FinderConfig.SitemapPaths = []string{"sitemap.xml"} }, "sitemappath"},
		{"zero concurrency", func(c *GlobalConfig) { c.FinderConfig.Concurrency = 0 }, "min"},
		{"zero timeout", func(c *GlobalConfig) { c.FinderConfig.TimeoutSecs = 0 }, "min"},
		{"bad proxy", func(c *GlobalConfig) { c.HTTPConfig.Proxy = "not a url" }, "proxyurl"},
		{"empty output file", func(c *GlobalConfig) { c.OutputConfig.OutputFile = "" }, "required"},
		{"memory threshold above one", func(c *GlobalConfig) { c.ResourceLimiterConfig.SystemMemThreshold = 1.5 }, "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
