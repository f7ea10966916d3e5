package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// Ensure LoggingArticleService implements wikiscrape.ArticleService.
var _ wikiscrape.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService, logging writes.
// Reads are delegated without logging.
type LoggingArticleService struct {
	next   wikiscrape.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next wikiscrape.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// SaveArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) SaveArticle(ctx context.Context, article *wikiscrape.Article) (stored *wikiscrape.StoredArticle, err error) {
	defer func(begin time.Time) {
		var id string
		if stored != nil {
			id = stored.ID
		}
		s.logger.Info("save article",
			"url", article.URL,
			"title", article.Title,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveArticle(ctx, article)
}

// FindArticleByURL delegates to the wrapped service.
func (s *LoggingArticleService) FindArticleByURL(ctx context.Context, url string) (*wikiscrape.StoredArticle, error) {
	return s.next.FindArticleByURL(ctx, url)
}

// FindArticles delegates to the wrapped service.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter wikiscrape.ArticleFilter) ([]*wikiscrape.StoredArticle, error) {
	return s.next.FindArticles(ctx, filter)
}

// DeleteArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
