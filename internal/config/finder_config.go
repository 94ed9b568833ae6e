package config

import (
	"time"

	"github.com/aleister1102/sitemapfinder/internal/prober"
)

// FinderConfig controls how each domain is investigated.
type FinderConfig struct {
	Concurrency             int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"min=1"`
	TimeoutSecs             int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	SitemapPaths            []string `json:"sitemap_paths,omitempty" yaml:"sitemap_paths,omitempty" validate:"omitempty,dive,sitemappath"`
	ExtractRobotsCompressed bool     `json:"extract_robots_compressed" yaml:"extract_robots_compressed"`
	MaxDecompressedMB       int      `json:"max_decompressed_mb,omitempty" yaml:"max_decompressed_mb,omitempty" validate:"min=0"`
}

// NewDefaultFinderConfig creates default finder configuration
func NewDefaultFinderConfig() FinderConfig {
	paths := make([]string, len(prober.DefaultSitemapPaths))
	copy(paths, prober.DefaultSitemapPaths)

	return FinderConfig{
		Concurrency:             DefaultFinderConcurrency,
		TimeoutSecs:             DefaultFinderTimeoutSecs,
		SitemapPaths:            paths,
		ExtractRobotsCompressed: DefaultFinderExtractRobotsCompressed,
		MaxDecompressedMB:       DefaultFinderMaxDecompressedMB,
	}
}

// Timeout returns the per-request timeout.
func (fc *FinderConfig) Timeout() time.Duration {
	return time.Duration(fc.TimeoutSecs) * time.Second
}

// MaxDecompressedBytes returns the decompression guard in bytes.
func (fc *FinderConfig) MaxDecompressedBytes() int64 {
	return int64(fc.MaxDecompressedMB) * 1024 * 1024
}
