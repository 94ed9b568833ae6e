package prober

import (
	"context"
	"net/http"

	"github.com/aleister1102/sitemapfinder/internal/compression"
	"github.com/aleister1102/sitemapfinder/internal/httpclient"
	"github.com/aleister1102/sitemapfinder/internal/urlhandler"
	"github.com/rs/zerolog"
)

// DefaultSitemapPaths is the conventional catalog checked for every base URL, in order.
var DefaultSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/sitemapindex.xml",
	"/sitemap.php",
	"/sitemap.txt",
	"/sitemap.html",
	"/sitemap.xml.gz",
	"/sitemap.gz",
	"/sitemap.xml.zip",
	"/sitemap.zip",
	"/sitemap_index.xml.gz",
	"/sitemap-index.xml.gz",
	"/sitemapindex.xml.gz",
	"/news-sitemap.xml",
	"/news-sitemap.xml.gz",
	"/image-sitemap.xml",
	"/image-sitemap.xml.gz",
	"/video-sitemap.xml",
	"/video-sitemap.xml.gz",
	"/product-sitemap.xml",
	"/product-sitemap.xml.gz",
	"/page-sitemap.xml",
	"/post-sitemap.xml",
	"/category-sitemap.xml",
}

// PathMiss records a catalog path whose existence check failed at the network level.
type PathMiss struct {
	Path string
	URL  string
	Err  error
}

// PathProbeResult partitions the catalog hits for one base URL.
type PathProbeResult struct {
	Plain      []string // every path that answered 200, compressed ones included
	Compressed []string // the subset of Plain with a .gz or .zip suffix
	Misses     []PathMiss
	Checked    int
}

// PathProber issues HEAD checks against a catalog of conventional sitemap paths.
type PathProber struct {
	client Requester
	paths  []string
	logger zerolog.Logger
}

// NewPathProber creates a PathProber. An empty catalog selects DefaultSitemapPaths.
func NewPathProber(client Requester, paths []string, logger zerolog.Logger) *PathProber {
	if len(paths) == 0 {
		paths = DefaultSitemapPaths
	}
	catalog := make([]string, len(paths))
	copy(catalog, paths)

	return &PathProber{
		client: client,
		paths:  catalog,
		logger: logger.With().Str("component", "PathProber").Logger(),
	}
}

// Paths returns a copy of the catalog in probing order.
func (p *PathProber) Paths() []string {
	out := make([]string, len(p.paths))
	copy(out, p.paths)
	return out
}

// Probe checks every catalog path under baseURL. A network failure on one path is
// recorded in Misses and the loop moves on. When every path failed at the network
// level the host is treated as unreachable and a *httpclient.NetworkError is
// returned alongside the (empty) result.
func (p *PathProber) Probe(ctx context.Context, baseURL string) (PathProbeResult, error) {
	result := PathProbeResult{
		Plain:      []string{},
		Compressed: []string{},
	}

	for _, path := range p.paths {
		sitemapURL, err := urlhandler.JoinPath(baseURL, path)
		if err != nil {
			return result, err
		}
		result.Checked++

		resp, err := p.client.Do(&httpclient.HTTPRequest{
			URL:         sitemapURL,
			Method:      http.MethodHead,
			Context:     ctx,
			NoRedirects: true,
		})
		if err != nil {
			if exhaustedStatus(err) {
				continue
			}
			if !httpclient.IsNetworkError(err) {
				return result, err
			}
			p.logger.Debug().Err(err).Str("url", sitemapURL).Msg("Catalog path check failed, skipping")
			result.Misses = append(result.Misses, PathMiss{Path: path, URL: sitemapURL, Err: err})
			continue
		}

		if resp.StatusCode != http.StatusOK {
			continue
		}

		result.Plain = append(result.Plain, sitemapURL)
		if compression.IsCompressed(sitemapURL) {
			result.Compressed = append(result.Compressed, sitemapURL)
		}
	}

	if result.Checked > 0 && len(result.Misses) == result.Checked {
		return result, httpclient.NewNetworkError(baseURL, "every catalog path was unreachable", result.Misses[0].Err)
	}
	return result, nil
}
