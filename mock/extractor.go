package mock

import "github.com/fwojciec/wikiscrape"

var _ wikiscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wikiscrape.Extractor.
type Extractor struct {
	ExtractFn func(page *wikiscrape.Page, keyword string) *wikiscrape.Article
}

func (e *Extractor) Extract(page *wikiscrape.Page, keyword string) *wikiscrape.Article {
	return e.ExtractFn(page, keyword)
}
