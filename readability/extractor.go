// Package readability provides a last-resort main content extractor backed
// by go-readability.
package readability

import (
	"bytes"
	"net/url"

	"github.com/fwojciec/scrape"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements scrape.BodyExtractor at compile time.
var _ scrape.BodyExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBody returns the normalized article text of html.
func (e *Extractor) ExtractBody(html []byte, pageURL string) (string, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return "", scrape.Errorf(scrape.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(bytes.NewReader(html), base)
	if err != nil {
		return "", scrape.Errorf(scrape.EPARSE, "readability: %v", err)
	}

	return scrape.Normalize(article.TextContent), nil
}
