package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays offered by the CLI's
// --retries flag: 1s, 2s, 4s, doubling further if more are asked for.
func DefaultRetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for range n {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// FetchWithRetry fetches url, waiting delays[i] before retry i+1.
// No delays means a single attempt. The logger, if provided, is called
// for each retry.
func FetchWithRetry(ctx context.Context, fetcher wikiscrape.Fetcher, url string, delays []time.Duration, logger LogFunc) (*wikiscrape.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
