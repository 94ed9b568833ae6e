package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/time/rate"
)

// HTTPClient wraps net/http.Client with per-request timeouts, pacing and typed errors.
type HTTPClient struct {
	client           *http.Client
	noRedirectClient *http.Client
	config           HTTPClientConfig
	logger           zerolog.Logger
	retryHandler     *RetryHandler
	limiter          *rate.Limiter
	bufferPool       sync.Pool
}

// NewHTTPClient creates a new HTTP client with the given configuration using net/http
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	// Timeouts are applied per request through the context so that a slow body read
	// is bounded by the same deadline as the handshake.
	client := &http.Client{Transport: transport}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	}

	noRedirectClient := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := int(config.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_redirects", config.MaxRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Float64("requests_per_second", config.RequestsPerSecond).
		Msg("HTTP client created")

	return &HTTPClient{
		client:           client,
		noRedirectClient: noRedirectClient,
		config:           config,
		logger:           logger,
		limiter:          limiter,
		bufferPool: sync.Pool{
			New: func() interface{} {
				b := make([]byte, 32*1024)
				return &b
			},
		},
	}, nil
}

// Do performs an HTTP request, with retries if a retry handler is configured.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	if c.retryHandler != nil {
		ctx := req.Context
		if ctx == nil {
			ctx = context.Background()
		}
		return c.retryHandler.DoWithRetry(ctx, c.do, req)
	}
	return c.do(req)
}

// do performs a single request attempt. Transport failures come back as *NetworkError,
// request construction failures as *Error.
func (c *HTTPClient) do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewNetworkError(req.URL, "request pacing wait aborted", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, req.Body)
	if err != nil {
		return nil, WrapError(err, "failed to create HTTP request")
	}

	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}

	client := c.client
	if req.NoRedirects {
		client = c.noRedirectClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, NewNetworkError(req.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	bufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(bufPtr)
	buf := bytes.NewBuffer((*bufPtr)[:0])

	var body io.Reader = resp.Body
	if c.config.MaxContentSize > 0 {
		body = io.LimitReader(resp.Body, int64(c.config.MaxContentSize)+1)
	}
	if _, err := io.Copy(buf, body); err != nil {
		return nil, NewNetworkError(req.URL, "failed to read response body", err)
	}

	bodyBytes := make([]byte, buf.Len())
	copy(bodyBytes, buf.Bytes())

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       bodyBytes,
	}
	if c.config.MaxContentSize > 0 && len(bodyBytes) > c.config.MaxContentSize {
		httpResp.Body = bodyBytes[:c.config.MaxContentSize]
		httpResp.Truncated = true
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// FetchContentInput holds parameters for FetchContent.
type FetchContentInput struct {
	URL     string
	Context context.Context
}

// FetchContentResult holds results from FetchContent.
type FetchContentResult struct {
	Content        []byte
	ContentType    string
	HTTPStatusCode int
	Truncated      bool
}

// FetchContent downloads a full resource body. A non-200 status is returned as *HTTPError.
func (c *HTTPClient) FetchContent(input FetchContentInput) (*FetchContentResult, error) {
	resp, err := c.Do(&HTTPRequest{URL: input.URL, Method: http.MethodGet, Context: input.Context})
	if err != nil {
		c.logger.Debug().Err(err).Str("url", input.URL).Msg("Failed to execute HTTP request")
		return nil, err
	}

	result := &FetchContentResult{
		ContentType:    resp.Headers["Content-Type"],
		HTTPStatusCode: resp.StatusCode,
		Truncated:      resp.Truncated,
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Str("url", input.URL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		errorBody := resp.Body
		if len(errorBody) > 1024 {
			errorBody = errorBody[:1024]
		}
		return result, NewHTTPErrorWithURL(resp.StatusCode, string(errorBody), input.URL)
	}

	if resp.Truncated {
		c.logger.Warn().
			Str("url", input.URL).
			Int("max_content_size", c.config.MaxContentSize).
			Msg("Content size exceeds limit, keeping the first bytes")
	}
	result.Content = resp.Body

	c.logger.Debug().
		Str("url", input.URL).
		Int("content_size", len(result.Content)).
		Str("content_type", result.ContentType).
		Msg("Successfully fetched content")

	return result, nil
}
