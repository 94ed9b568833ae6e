package models

// Protocol is the scheme variant a probe target uses.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// ProbeTarget is an absolute base URL (scheme + host, no path) used as the join root for probes.
type ProbeTarget struct {
	Protocol Protocol
	BaseURL  string
}
