package models

// ResultStatus is the terminal status of a domain investigation.
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusError   ResultStatus = "error"
)

// Coarse, user-facing error classifications carried in DomainResult.Error.
const (
	ErrorConnectionFailed = "Connection failed"
	ErrorProcessing       = "Processing error"
)

// DomainResult is the terminal record produced for one input domain.
type DomainResult struct {
	Domain     string       `json:"domain"`
	Sitemaps   []string     `json:"sitemaps"`
	NestedURLs []string     `json:"nested_urls"` // URLs found inside compressed sitemaps
	Status     ResultStatus `json:"status"`
	Error      string       `json:"error,omitempty"`
}

// NewSuccessResult builds a success record from the accumulated sets.
func NewSuccessResult(domain string, sitemaps, nested *URLSet) DomainResult {
	return DomainResult{
		Domain:     domain,
		Sitemaps:   sitemaps.Sorted(),
		NestedURLs: nested.Sorted(),
		Status:     ResultStatusSuccess,
	}
}

// NewErrorResult builds an error record. Sitemaps and nested URLs are empty, not nil.
func NewErrorResult(domain, classification string) DomainResult {
	return DomainResult{
		Domain:     domain,
		Sitemaps:   []string{},
		NestedURLs: []string{},
		Status:     ResultStatusError,
		Error:      classification,
	}
}

// IsSuccess reports whether the investigation completed without an orchestration error.
func (r DomainResult) IsSuccess() bool {
	return r.Status == ResultStatusSuccess
}
