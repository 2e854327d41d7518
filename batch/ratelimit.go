package batch

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/scrape"
	"golang.org/x/time/rate"
)

var _ scrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum interval between requests to the same
// domain using token buckets. Requests to different domains do not wait
// on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per interval
// per domain. A non-positive interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
