package wikiscrape

import (
	"context"
	"time"
)

// Article is the structured record extracted from one article page.
type Article struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Sections []string `json:"sections"`
	Links    []string `json:"links"`
	Images   []string `json:"images"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// Extractor turns a fetched page into an article record.
type Extractor interface {
	// Extract never fails: every field degrades to its empty value when the
	// page lacks the corresponding markup. A non-empty keyword restricts
	// links to those relevant to it.
	Extract(page *Page, keyword string) *Article
}

// ScrapeProgress reports the outcome of one URL in a batch.
type ScrapeProgress struct {
	URL       string
	Completed int
	Total     int

	// Article is set on success.
	Article *Article

	// Duplicate is true when the article was dropped because an earlier
	// URL in the batch produced the same title.
	Duplicate bool

	Error error
}

// ScrapeProgressFunc is called once per URL as a batch is processed.
type ScrapeProgressFunc func(ScrapeProgress)

// ArticleScraper fetches and extracts a batch of URLs sequentially.
// Implementations hide pacing, retry and deduplication.
type ArticleScraper interface {
	// ScrapeAll returns the articles that were retrieved. Per-URL failures
	// are reported through progress and never abort the batch.
	ScrapeAll(ctx context.Context, urls []string, keyword string, progress ScrapeProgressFunc) ([]*Article, error)
}

// ArticleStore persists a run's articles with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ArticleStore interface {
	Save(ctx context.Context, article *Article) error
	Commit() error
	Abort() error
}

// StoredArticle is an article record with its storage metadata.
type StoredArticle struct {
	Article

	ID          string    `json:"id"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// SaveArticle inserts the article or replaces the stored record with the
	// same URL.
	SaveArticle(ctx context.Context, article *Article) (*StoredArticle, error)

	// FindArticleByURL retrieves an article by its source URL.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByURL(ctx context.Context, url string) (*StoredArticle, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*StoredArticle, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	// Title matches case-insensitively as a substring.
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
