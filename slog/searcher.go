package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// Ensure LoggingSearcher implements wikiscrape.Searcher.
var _ wikiscrape.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   wikiscrape.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next wikiscrape.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, max int) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"max", max,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, max)
}
