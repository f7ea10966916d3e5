// Package scrape orchestrates batches of article fetches: search
// resolution, pacing, retry, extraction and deduplication.
package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/bloom"
)

var _ wikiscrape.ArticleScraper = (*Scraper)(nil)

// Scraper fetches and extracts URLs one at a time.
type Scraper struct {
	Fetcher     wikiscrape.Fetcher
	Extractor   wikiscrape.Extractor
	RateLimiter wikiscrape.DomainLimiter
	RetryDelays []time.Duration
	Logger      LogFunc
}

// ScrapeAll processes urls in order. A URL already seen in the batch is
// skipped, and an article whose title matches an earlier one
// (case-insensitively) is dropped; both are reported as duplicates.
// Per-URL failures are reported through progress and the batch continues.
// Only context cancellation stops it early, returning the articles
// gathered so far.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, keyword string, progress wikiscrape.ScrapeProgressFunc) ([]*wikiscrape.Article, error) {
	seen := bloom.NewFilter(uint(len(urls)), 0.0001)
	titles := make(map[string]bool)

	report := func(p wikiscrape.ScrapeProgress) {
		if progress != nil {
			progress(p)
		}
	}

	var articles []*wikiscrape.Article
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return articles, err
		}

		event := wikiscrape.ScrapeProgress{
			URL:       url,
			Completed: i + 1,
			Total:     len(urls),
		}

		if seen.Seen(url) {
			event.Duplicate = true
			report(event)
			continue
		}

		article, err := s.scrape(ctx, url, keyword)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return articles, ctxErr
			}
			event.Error = err
			report(event)
			continue
		}

		event.Article = article
		key := strings.ToLower(article.Title)
		if titles[key] {
			event.Duplicate = true
			report(event)
			continue
		}
		titles[key] = true

		articles = append(articles, article)
		report(event)
	}

	return articles, nil
}

func (s *Scraper) scrape(ctx context.Context, url, keyword string) (*wikiscrape.Article, error) {
	if s.RateLimiter != nil {
		host, _ := wikiscrape.SplitURL(url)
		if err := s.RateLimiter.Wait(ctx, host); err != nil {
			return nil, err
		}
	}

	page, err := FetchWithRetry(ctx, s.Fetcher, url, s.RetryDelays, s.Logger)
	if err != nil {
		return nil, err
	}

	return s.Extractor.Extract(page, keyword), nil
}
