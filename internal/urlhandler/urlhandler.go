package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

var schemePrefixRegex = regexp.MustCompile(`^https?://`)

// NormalizeDomain trims whitespace and strips a leading http:// or https:// prefix.
func NormalizeDomain(domain string) (string, error) {
	trimmed := strings.TrimSpace(domain)
	if trimmed == "" {
		return "", errors.New("domain is empty or only whitespace")
	}

	host := schemePrefixRegex.ReplaceAllString(trimmed, "")
	if host == "" {
		return "", fmt.Errorf("domain '%s' has no host after removing the scheme", trimmed)
	}
	return host, nil
}

// ProbeTargets expands a domain into its http and https base URLs, in that order.
func ProbeTargets(domain string) ([]models.ProbeTarget, error) {
	host, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}

	targets := []models.ProbeTarget{
		{Protocol: models.ProtocolHTTP, BaseURL: "http://" + host},
		{Protocol: models.ProtocolHTTPS, BaseURL: "https://" + host},
	}
	for _, target := range targets {
		parsed, err := url.Parse(target.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("could not parse base URL '%s': %w", target.BaseURL, err)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("base URL '%s' lacks a valid hostname", target.BaseURL)
		}
	}
	return targets, nil
}

// JoinPath resolves path against baseURL the way a browser resolves a link:
// an absolute path replaces whatever path the base carries.
func JoinPath(baseURL, path string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("could not parse base URL '%s': %w", baseURL, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("could not parse path '%s': %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// ValidateURLFormat validates URL format using net/url parsing (for config validation)
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return fmt.Errorf("URL is empty")
	}

	_, err := url.ParseRequestURI(trimmedURL)
	if err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}

	return nil
}
