package prober

import (
	"errors"

	"github.com/aleister1102/sitemapfinder/internal/httpclient"
)

// Requester is the slice of the HTTP client the probers depend on.
type Requester interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// Fetcher downloads a whole resource. A non-200 answer comes back as *httpclient.HTTPError.
type Fetcher interface {
	FetchContent(input httpclient.FetchContentInput) (*httpclient.FetchContentResult, error)
}

// Client is the HTTP surface a domain investigation needs: single requests for
// probing and full downloads for compressed sitemaps.
type Client interface {
	Requester
	Fetcher
}

// exhaustedStatus reports whether err only signals that retries ran out on a
// retryable status code; the probers treat that like any other non-200 answer.
func exhaustedStatus(err error) bool {
	var httpErr *httpclient.HTTPError
	return errors.As(err, &httpErr) && !httpclient.IsNetworkError(err)
}
