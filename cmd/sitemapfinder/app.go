package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aleister1102/sitemapfinder/internal/config"
	"github.com/aleister1102/sitemapfinder/internal/discovery"
	"github.com/aleister1102/sitemapfinder/internal/httpclient"
	"github.com/aleister1102/sitemapfinder/internal/logger"
	"github.com/aleister1102/sitemapfinder/internal/orchestrator"
	"github.com/aleister1102/sitemapfinder/internal/progress"
	"github.com/aleister1102/sitemapfinder/internal/reporter"
	"github.com/aleister1102/sitemapfinder/internal/rslimiter"
	"github.com/aleister1102/sitemapfinder/internal/urlhandler"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// run executes one batch end to end. User-facing output goes to stdout; logs go
// wherever the log configuration sends them.
func run(ctx context.Context, flags AppFlags, stdout io.Writer, bootLogger zerolog.Logger) error {
	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		return fmt.Errorf("could not load global config: %w", err)
	}
	applyFlagOverrides(gCfg, flags)

	if err := config.ValidateConfig(gCfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	runID := uuid.NewString()
	zLogger, err := logger.NewWithRunID(gCfg.LogConfig, runID)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	zLogger.Debug().Str("format", gCfg.OutputConfig.Format).Msg("Configuration loaded")

	fmt.Fprintf(stdout, "\n📋 Reading domains from %s...\n", flags.InputFile)
	domains, err := urlhandler.ReadDomainsFromFile(flags.InputFile, zLogger)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "📊 Found %d domains\n", len(domains))

	client, err := buildHTTPClient(gCfg, zLogger)
	if err != nil {
		return fmt.Errorf("could not create HTTP client: %w", err)
	}

	observers := discovery.MultiObserver{discovery.NewLogObserver(zLogger)}
	if flags.Verbose {
		observers = append(observers, discovery.NewConsoleObserver(stdout))
	}

	var display *progress.DisplayManager
	if gCfg.ProgressConfig.EnableProgress {
		display = progress.NewDisplayManager(zLogger, &progress.DisplayConfig{
			DisplayInterval:   gCfg.ProgressConfig.GetDisplayIntervalDuration(),
			EnableProgress:    true,
			ShowETAEstimation: gCfg.ProgressConfig.ShowETAEstimation,
		})
		observers = append(observers, display)
		display.Start()
	}

	investigator := discovery.NewInvestigator(client, discovery.InvestigatorConfig{
		SitemapPaths:            gCfg.FinderConfig.SitemapPaths,
		ExtractRobotsCompressed: gCfg.FinderConfig.ExtractRobotsCompressed,
		MaxDecompressedBytes:    gCfg.FinderConfig.MaxDecompressedBytes(),
	}, observers, zLogger)
	orch := orchestrator.NewOrchestrator(investigator, gCfg.FinderConfig.Concurrency, observers, zLogger)
	if rc := gCfg.ResourceLimiterConfig; rc.Enabled {
		limiter := rslimiter.NewResourceLimiter(rslimiter.ResourceLimiterConfig{
			MaxMemoryMB:        rc.MaxMemoryMB,
			SystemMemThreshold: rc.SystemMemThreshold,
			MaxWait:            rc.MaxWait(),
		}, zLogger)
		limiter.LogUsage()
		orch = orch.WithAdmitter(limiter)
	}

	fmt.Fprintf(stdout, "\n🔍 Finding sitemaps using both HTTP and HTTPS [concurrency=%d, timeout=%ds]\n\n",
		gCfg.FinderConfig.Concurrency, gCfg.FinderConfig.TimeoutSecs)

	results := orch.Run(ctx, domains)

	if display != nil {
		display.Stop()
	}

	writer := reporter.NewResultWriterBuilder(zLogger).
		WithParquetCompression(gCfg.OutputConfig.ParquetCompression).
		Build()
	path, err := writer.WriteResults(results, gCfg.OutputConfig.Format, gCfg.OutputConfig.OutputFile)
	if err != nil {
		return fmt.Errorf("could not save results: %w", err)
	}
	fmt.Fprintf(stdout, "Results saved to %s\n", path)

	if gCfg.OutputConfig.PrintSummary {
		if err := reporter.RenderSummary(stdout, reporter.BuildSummary(results)); err != nil {
			return fmt.Errorf("could not print summary: %w", err)
		}
	}

	zLogger.Info().Int("domains", len(results)).Str("output", path).Msg("Run finished")
	return nil
}

// applyFlagOverrides lets explicit command line values win over the config file.
func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.IsSet("output") {
		gCfg.OutputConfig.OutputFile = flags.OutputFile
	}
	if flags.IsSet("format") {
		gCfg.OutputConfig.Format = flags.Format
	}
	if flags.IsSet("timeout") {
		gCfg.FinderConfig.TimeoutSecs = flags.TimeoutSecs
	}
	if flags.IsSet("concurrency") {
		gCfg.FinderConfig.Concurrency = flags.Concurrency
	}
}

func buildHTTPClient(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*httpclient.HTTPClient, error) {
	httpCfg := gCfg.HTTPConfig

	clientCfg := httpclient.DefaultHTTPClientConfig()
	clientCfg.Timeout = gCfg.FinderConfig.Timeout()
	clientCfg.InsecureSkipVerify = httpCfg.InsecureSkipVerify
	clientCfg.MaxRedirects = httpCfg.MaxRedirects
	clientCfg.Proxy = httpCfg.Proxy
	clientCfg.MaxContentSize = httpCfg.MaxContentSizeMB * 1024 * 1024
	clientCfg.EnableHTTP2 = httpCfg.EnableHTTP2
	clientCfg.RequestsPerSecond = httpCfg.RequestsPerSecond
	if httpCfg.UserAgent != "" {
		clientCfg.UserAgent = httpCfg.UserAgent
	}
	for k, v := range httpCfg.CustomHeaders {
		clientCfg.CustomHeaders[k] = v
	}

	builder := httpclient.NewHTTPClientBuilder(zLogger).WithConfig(clientCfg)
	if httpCfg.MaxRetries > 0 {
		retryCfg := httpclient.DefaultRetryHandlerConfig()
		retryCfg.MaxRetries = httpCfg.MaxRetries
		builder = builder.WithRetry(retryCfg)
	}
	return builder.Build()
}
