package scrape

import (
	"context"
	"strings"
)

// FetchResult is the raw outcome of one successful HTTP exchange.
type FetchResult struct {
	// Body holds the decoded page. It is nil for non-HTML responses.
	Body []byte

	// ContentType is the raw Content-Type header, empty if absent.
	ContentType string

	// Domain is the authority of the final URL after redirects.
	Domain string

	StatusCode int
}

// IsHTML reports whether the response declared an HTML content type.
func (r *FetchResult) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "text/html")
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch issues a single GET for url. Network failures, timeouts and
	// non-2xx statuses return an EFETCH error. A non-HTML response is not
	// an error; callers check FetchResult.IsHTML.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
