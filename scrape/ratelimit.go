package scrape

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/wikiscrape"
	"golang.org/x/time/rate"
)

var _ wikiscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same host by a fixed interval using
// one token bucket per host.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter that allows one request per
// interval to each host. Each host gets a burst of 1, so the first request
// is immediate. A zero interval disables pacing.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	every := rate.Inf
	if interval > 0 {
		every = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
	}
}

// Wait blocks until the rate limit allows a request to host.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(d.every, 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
