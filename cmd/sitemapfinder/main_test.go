package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/sitemapfinder/internal/config"
	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_PositionalInput(t *testing.T) {
	flags, err := ParseFlags([]string{"domains.txt"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "domains.txt", flags.InputFile)
	assert.False(t, flags.IsSet("output"))
	assert.False(t, flags.IsSet("timeout"))
	assert.False(t, flags.Verbose)
}

func TestParseFlags_Aliases(t *testing.T) {
	flags, err := ParseFlags([]string{"-o", "out", "-f", "csv", "-t", "3", "-c", "7", "-gc", "cfg.yaml", "-v", "domains.txt"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "out", flags.OutputFile)
	assert.Equal(t, "csv", flags.Format)
	assert.Equal(t, 3, flags.TimeoutSecs)
	assert.Equal(t, 7, flags.Concurrency)
	assert.Equal(t, "cfg.yaml", flags.GlobalConfigFile)
	assert.True(t, flags.Verbose)
	assert.True(t, flags.IsSet("output"))
	assert.True(t, flags.IsSet("concurrency"))
}

func TestParseFlags_LongFormWins(t *testing.T) {
	flags, err := ParseFlags([]string{"-format", "parquet", "-f", "csv", "-input", "a.txt"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "parquet", flags.Format)
	assert.Equal(t, "a.txt", flags.InputFile)
}

func TestParseFlags_FlagsAfterPositional(t *testing.T) {
	flags, err := ParseFlags([]string{"domains.txt", "-o", "out", "-f", "csv"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "domains.txt", flags.InputFile)
	assert.Equal(t, "out", flags.OutputFile)
	assert.Equal(t, "csv", flags.Format)
	assert.True(t, flags.IsSet("output"))
	assert.True(t, flags.IsSet("format"))
}

func TestParseFlags_FlagsAroundPositional(t *testing.T) {
	flags, err := ParseFlags([]string{"-c", "4", "domains.txt", "-v", "-timeout", "3"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "domains.txt", flags.InputFile)
	assert.Equal(t, 4, flags.Concurrency)
	assert.Equal(t, 3, flags.TimeoutSecs)
	assert.True(t, flags.Verbose)
}

func TestParseFlags_ExtraPositionalRejected(t *testing.T) {
	_, err := ParseFlags([]string{"domains.txt", "-o", "out", "more.txt"}, io.Discard)
	assert.ErrorIs(t, err, errExtraArgument)

	_, err = ParseFlags([]string{"-input", "a.txt", "b.txt"}, io.Discard)
	assert.ErrorIs(t, err, errExtraArgument)

	_, err = ParseFlags([]string{"domains.txt", "-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := ParseFlags(nil, io.Discard)
	assert.ErrorIs(t, err, errMissingInput)

	_, err = ParseFlags([]string{"-t", "0", "domains.txt"}, io.Discard)
	assert.Error(t, err)

	_, err = ParseFlags([]string{"-c", "-1", "domains.txt"}, io.Discard)
	assert.Error(t, err)

	_, err = ParseFlags([]string{"-unknown", "domains.txt"}, io.Discard)
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	gCfg := config.NewDefaultGlobalConfig()
	flags, err := ParseFlags([]string{"-o", "custom", "-c", "2", "domains.txt"}, io.Discard)
	require.NoError(t, err)

	applyFlagOverrides(gCfg, flags)

	assert.Equal(t, "custom", gCfg.OutputConfig.OutputFile)
	assert.Equal(t, 2, gCfg.FinderConfig.Concurrency)
	// Not given on the command line, so the config value stays.
	assert.Equal(t, config.DefaultOutputFormat, gCfg.OutputConfig.Format)
	assert.Equal(t, config.DefaultFinderTimeoutSecs, gCfg.FinderConfig.TimeoutSecs)
}

func gzipText(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestRun_EndToEnd(t *testing.T) {
	compressed := gzipText(t, "<urlset><url><loc>https://example.test/a</loc></url><url><loc> https://example.test/b </loc></url></urlset>")

	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "User-agent: *\nSitemap: http://"+r.Host+"/declared.xml\n")
	})
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<urlset></urlset>")
	})
	mux.HandleFunc("/sitemap.xml.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(compressed)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	dir := t.TempDir()

	inputPath := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("\n"+host+"\n\n"), 0644))

	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
  "log_config": {"log_level": "error"},
  "progress_config": {"enable_progress": false},
  "resource_limiter_config": {"enabled": false}
}`), 0644))

	outBase := filepath.Join(dir, "results")
	flags, err := ParseFlags([]string{"-gc", cfgPath, "-o", outBase, "-t", "2", "-v", inputPath}, io.Discard)
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), flags, &stdout, zerolog.Nop()))

	data, err := os.ReadFile(outBase + ".json")
	require.NoError(t, err)

	var results []models.DomainResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, host, result.Domain)
	assert.Equal(t, models.ResultStatusSuccess, result.Status)
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{
		server.URL + "/declared.xml",
		server.URL + "/sitemap.xml",
		server.URL + "/sitemap.xml.gz",
	}, result.Sitemaps)
	assert.Equal(t, []string{"https://example.test/a", "https://example.test/b"}, result.NestedURLs)

	out := stdout.String()
	assert.Contains(t, out, "📊 Found 1 domains")
	assert.Contains(t, out, "Processing 1 domains...")
	assert.Contains(t, out, "✅ "+host+" complete: 3 sitemaps found")
	assert.Contains(t, out, "Results saved to "+outBase+".json")
	assert.Contains(t, out, "✓ Processed:       1 domains")
	assert.Contains(t, out, "🔗 URLs extracted:  2")
}

func TestRun_MissingInputFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_config:\n  log_level: error\n"), 0644))

	flags, err := ParseFlags([]string{"-gc", cfgPath, filepath.Join(dir, "missing.txt")}, io.Discard)
	require.NoError(t, err)

	err = run(context.Background(), flags, io.Discard, zerolog.Nop())
	assert.Error(t, err)
}

func TestRun_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("example.test\n"), 0644))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_config:\n  log_level: error\n"), 0644))

	flags, err := ParseFlags([]string{"-gc", cfgPath, "-f", "xml", inputPath}, io.Discard)
	require.NoError(t, err)

	err = run(context.Background(), flags, io.Discard, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
