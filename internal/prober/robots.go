package prober

import (
	"context"
	"net/http"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/httpclient"
	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/aleister1102/sitemapfinder/internal/urlhandler"
	"github.com/rs/zerolog"
)

const robotsPath = "/robots.txt"

// RobotsProber reads robots.txt and collects its Sitemap directives.
type RobotsProber struct {
	client Requester
	logger zerolog.Logger
}

// NewRobotsProber creates a RobotsProber.
func NewRobotsProber(client Requester, logger zerolog.Logger) *RobotsProber {
	return &RobotsProber{
		client: client,
		logger: logger.With().Str("component", "RobotsProber").Logger(),
	}
}

// Probe fetches <baseURL>/robots.txt. A missing or non-200 robots.txt yields no
// sitemaps and no error. Transport failures are returned as *httpclient.NetworkError
// and the caller decides how to continue.
func (p *RobotsProber) Probe(ctx context.Context, baseURL string) ([]string, error) {
	robotsURL, err := urlhandler.JoinPath(baseURL, robotsPath)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(&httpclient.HTTPRequest{
		URL:     robotsURL,
		Method:  http.MethodGet,
		Context: ctx,
	})
	if err != nil {
		if exhaustedStatus(err) {
			return []string{}, nil
		}
		p.logger.Debug().Err(err).Str("url", robotsURL).Msg("robots.txt request failed")
		return []string{}, err
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug().Str("url", robotsURL).Int("status_code", resp.StatusCode).Msg("robots.txt not available")
		return []string{}, nil
	}

	sitemaps := ParseRobotsSitemaps(string(resp.Body))
	p.logger.Debug().Str("url", robotsURL).Int("sitemaps", len(sitemaps)).Msg("robots.txt parsed")
	return sitemaps, nil
}

// ParseRobotsSitemaps returns the value of every line that starts with "sitemap:"
// (case-insensitive), trimmed, with empty values dropped and duplicates collapsed.
func ParseRobotsSitemaps(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	found := models.NewURLSet()
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		_, value, _ := strings.Cut(line, ":")
		found.Add(strings.TrimSpace(value))
	}
	return found.Sorted()
}
