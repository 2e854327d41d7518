package batch

import (
	"context"
	"time"

	"github.com/fwojciec/scrape"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*scrape.FetchResult, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// FetchWithRetryDelays calls fetch and retries failures after each delay in
// delays, so at most len(delays)+1 attempts are made. Only errors are
// retried; a non-HTML result is returned as is.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*scrape.FetchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		if err := sleep(ctx, delays[attempt]); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
