package config

// HTTPConfig defines the outbound HTTP client settings.
type HTTPConfig struct {
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSizeMB   int               `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"min=0"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	MaxRetries         int               `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"min=0,max=10"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,proxyurl"`
	RequestsPerSecond  float64           `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty" validate:"min=0"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// NewDefaultHTTPConfig creates default HTTP configuration
func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		CustomHeaders:      map[string]string{},
		EnableHTTP2:        true,
		InsecureSkipVerify: false,
		MaxContentSizeMB:   DefaultHTTPMaxContentSizeMB,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		MaxRetries:         DefaultHTTPMaxRetries,
		RequestsPerSecond:  DefaultHTTPRequestsPerSecond,
		UserAgent:          DefaultHTTPUserAgent,
	}
}
