package mock

import (
	"context"

	"github.com/fwojciec/wikiscrape"
)

var _ wikiscrape.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of wikiscrape.ArticleService.
type ArticleService struct {
	SaveArticleFn      func(ctx context.Context, article *wikiscrape.Article) (*wikiscrape.StoredArticle, error)
	FindArticleByURLFn func(ctx context.Context, url string) (*wikiscrape.StoredArticle, error)
	FindArticlesFn     func(ctx context.Context, filter wikiscrape.ArticleFilter) ([]*wikiscrape.StoredArticle, error)
	DeleteArticleFn    func(ctx context.Context, id string) error
}

func (s *ArticleService) SaveArticle(ctx context.Context, article *wikiscrape.Article) (*wikiscrape.StoredArticle, error) {
	return s.SaveArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*wikiscrape.StoredArticle, error) {
	return s.FindArticleByURLFn(ctx, url)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter wikiscrape.ArticleFilter) ([]*wikiscrape.StoredArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
