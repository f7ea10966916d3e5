package mock

import (
	"context"

	"github.com/fwojciec/wikiscrape"
)

var _ wikiscrape.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of wikiscrape.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, max int) ([]string, error)
}

func (s *Searcher) Search(ctx context.Context, query string, max int) ([]string, error) {
	return s.SearchFn(ctx, query, max)
}

var _ wikiscrape.ArticleScraper = (*ArticleScraper)(nil)

// ArticleScraper is a mock implementation of wikiscrape.ArticleScraper.
type ArticleScraper struct {
	ScrapeAllFn func(ctx context.Context, urls []string, keyword string, progress wikiscrape.ScrapeProgressFunc) ([]*wikiscrape.Article, error)
}

func (s *ArticleScraper) ScrapeAll(ctx context.Context, urls []string, keyword string, progress wikiscrape.ScrapeProgressFunc) ([]*wikiscrape.Article, error) {
	return s.ScrapeAllFn(ctx, urls, keyword, progress)
}
