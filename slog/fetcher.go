// Package slog provides logging decorators for scrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scrape"
)

// Ensure LoggingFetcher implements scrape.Fetcher.
var _ scrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   scrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *scrape.FetchResult, err error) {
	defer func(begin time.Time) {
		var bytes int
		var contentType string
		if result != nil {
			bytes = len(result.Body)
			contentType = result.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"content_type", contentType,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
