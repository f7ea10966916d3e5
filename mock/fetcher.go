package mock

import (
	"context"

	"github.com/fwojciec/wikiscrape"
)

var _ wikiscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of wikiscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*wikiscrape.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*wikiscrape.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ wikiscrape.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of wikiscrape.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
