package scrape

import (
	"context"
	"strings"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/goquery"
)

var _ wikiscrape.Searcher = (*Resolver)(nil)

// Resolver turns a free-text query into article URLs using the site's
// full-text search page.
type Resolver struct {
	fetcher wikiscrape.Fetcher
	site    wikiscrape.Site
}

// NewResolver creates a Resolver that fetches search pages with fetcher.
func NewResolver(fetcher wikiscrape.Fetcher, site wikiscrape.Site) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		site:    site,
	}
}

// Search returns up to max article URLs for query. When the search page
// cannot be fetched or lists nothing, the query itself is tried as an
// article title.
func (r *Resolver) Search(ctx context.Context, query string, max int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, wikiscrape.Errorf(wikiscrape.EINVALID, "search query required")
	}

	var hits []string
	page, err := r.fetcher.Fetch(ctx, r.site.SearchURL(query))
	switch {
	case err == nil:
		hits = wikiscrape.DedupeURLs(goquery.ExtractSearchResults(page.HTML, r.site, max), max)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	}

	if len(hits) == 0 {
		return []string{r.site.ArticleURL(query)}, nil
	}
	return hits, nil
}
