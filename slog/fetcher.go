package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// Ensure LoggingFetcher implements wikiscrape.Fetcher.
var _ wikiscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   wikiscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wikiscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *wikiscrape.Page, err error) {
	defer func(begin time.Time) {
		var final string
		var size int
		if page != nil {
			final = page.URL
			size = len(page.HTML)
		}
		f.logger.Info("fetch",
			"url", url,
			"final", final,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
