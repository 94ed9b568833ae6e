package httpclient

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// RetryHandler retries requests that failed at the network level or returned a
// retryable status code, backing off exponentially between attempts.
type RetryHandler struct {
	maxRetries       int
	baseDelay        time.Duration
	maxDelay         time.Duration
	enableJitter     bool
	retryStatusCodes map[int]bool
	logger           zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxRetries       int           `json:"max_retries"`
	BaseDelay        time.Duration `json:"base_delay"`
	MaxDelay         time.Duration `json:"max_delay"`
	EnableJitter     bool          `json:"enable_jitter"`
	RetryStatusCodes []int         `json:"retry_status_codes"`
}

// DefaultRetryHandlerConfig retries rate limiting and transient gateway errors.
func DefaultRetryHandlerConfig() RetryHandlerConfig {
	return RetryHandlerConfig{
		MaxRetries:       0,
		BaseDelay:        500 * time.Millisecond,
		MaxDelay:         5 * time.Second,
		EnableJitter:     true,
		RetryStatusCodes: []int{429, 502, 503, 504},
	}
}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	statusCodeMap := make(map[int]bool, len(config.RetryStatusCodes))
	for _, code := range config.RetryStatusCodes {
		statusCodeMap[code] = true
	}

	return &RetryHandler{
		maxRetries:       config.MaxRetries,
		baseDelay:        config.BaseDelay,
		maxDelay:         config.MaxDelay,
		enableJitter:     config.EnableJitter,
		retryStatusCodes: statusCodeMap,
		logger:           logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// ShouldRetry determines if a request should be retried based on status code
func (rh *RetryHandler) ShouldRetry(statusCode int, attempt int) bool {
	if attempt >= rh.maxRetries {
		return false
	}
	return rh.retryStatusCodes[statusCode]
}

// CalculateDelay calculates the delay for the next retry attempt using exponential backoff
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return rh.baseDelay
	}

	delay := rh.baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if delay > rh.maxDelay {
		delay = rh.maxDelay
	}

	if rh.enableJitter {
		if spread := delay.Milliseconds() / 10; spread > 0 {
			delay += time.Duration(rand.Int63n(spread)) * time.Millisecond
		}
	}

	return delay
}

// WaitForRetry waits for the calculated delay before retrying
func (rh *RetryHandler) WaitForRetry(ctx context.Context, attempt int, reason string, url string) error {
	delay := rh.CalculateDelay(attempt)

	rh.logger.Debug().
		Str("url", url).
		Str("reason", reason).
		Int("attempt", attempt+1).
		Int("max_retries", rh.maxRetries).
		Dur("delay", delay).
		Msg("Waiting before retry")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// DoWithRetry executes an HTTP request with retry logic. Errors that are not
// network-class (for example a malformed URL) are returned immediately.
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastResp *HTTPResponse
	var lastErr error

	for attempt := 0; attempt <= rh.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, NewNetworkError(req.URL, "request cancelled before retry", err)
		}

		resp, err := doFunc(req)
		if err != nil {
			if !IsNetworkError(err) {
				return nil, err
			}
			lastErr, lastResp = err, nil
			if attempt < rh.maxRetries {
				if waitErr := rh.WaitForRetry(ctx, attempt, "network error", req.URL); waitErr != nil {
					return nil, NewNetworkError(req.URL, "retry wait aborted", waitErr)
				}
				continue
			}
			break
		}

		lastResp, lastErr = resp, nil
		if !rh.ShouldRetry(resp.StatusCode, attempt) {
			break
		}
		if waitErr := rh.WaitForRetry(ctx, attempt, "retryable status", req.URL); waitErr != nil {
			return nil, NewNetworkError(req.URL, "retry wait aborted", waitErr)
		}
	}

	if lastErr != nil {
		return nil, WrapError(lastErr, "all retry attempts failed")
	}

	if lastResp != nil && rh.retryStatusCodes[lastResp.StatusCode] {
		err := NewHTTPErrorWithURL(lastResp.StatusCode, string(lastResp.Body), req.URL)
		return lastResp, WrapError(err, "all retry attempts failed")
	}

	return lastResp, nil
}
