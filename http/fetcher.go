// Package http provides an HTTP-based implementation of scrape.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/scrape"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies requests as a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.4896.127 Safari/537.36"

const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.5"
)

// Ensure Fetcher implements scrape.Fetcher at compile time.
var _ scrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with browser-like headers. Its configuration is
// fixed at construction, so one Fetcher is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient uses a copy of c as the underlying client. Its timeout is
// replaced by the configured one.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		clone := *c
		f.client = &clone
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch issues a GET for url. Redirects are followed and the result domain
// reflects the final URL. Non-HTML responses are returned without a body.
// HTML bodies are decoded to UTF-8 using the declared or sniffed charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*scrape.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scrape.Errorf(scrape.EFETCH, "invalid request for %s: %v", url, err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, scrape.Errorf(scrape.EFETCH, "request %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, scrape.Errorf(scrape.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	result := &scrape.FetchResult{
		ContentType: resp.Header.Get("Content-Type"),
		Domain:      resp.Request.URL.Host,
		StatusCode:  resp.StatusCode,
	}
	if !result.IsHTML() {
		return result, nil
	}

	reader, err := charset.NewReader(resp.Body, result.ContentType)
	if err != nil {
		reader = resp.Body
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, scrape.Errorf(scrape.EFETCH, "read body of %s: %v", url, err)
	}
	result.Body = body

	return result, nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}
