package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wikiscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wikiscrape.ArticleService = (*ArticleService)(nil)

const articleColumns = "id, url, title, summary, sections, links, images, content_hash, fetched_at"

// ArticleService implements wikiscrape.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashArticle computes the xxHash of everything extracted from the page.
func hashArticle(a *wikiscrape.Article) string {
	d := xxhash.New()
	for _, part := range [][]string{{a.Title, a.Summary}, a.Sections, a.Links, a.Images} {
		for _, s := range part {
			_, _ = d.WriteString(s)
			_, _ = d.WriteString("\x00")
		}
		_, _ = d.WriteString("\x01")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// SaveArticle inserts the article, or updates the record stored under the
// same URL. A record whose content hash is unchanged is returned as is.
func (s *ArticleService) SaveArticle(ctx context.Context, article *wikiscrape.Article) (*wikiscrape.StoredArticle, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}

	hash := hashArticle(article)

	existing, err := s.FindArticleByURL(ctx, article.URL)
	switch {
	case wikiscrape.ErrorCode(err) == wikiscrape.ENOTFOUND:
		existing = nil
	case err != nil:
		return nil, err
	case existing.ContentHash == hash:
		return existing, nil
	}

	sections, err := encodeList(article.Sections)
	if err != nil {
		return nil, err
	}
	links, err := encodeList(article.Links)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(article.Images)
	if err != nil {
		return nil, err
	}

	stored := &wikiscrape.StoredArticle{
		Article:     *article,
		ContentHash: hash,
		FetchedAt:   time.Now().UTC().Truncate(time.Second),
	}

	if existing != nil {
		stored.ID = existing.ID
		_, err = s.db.ExecContext(ctx, `
			UPDATE articles
			SET title = ?, summary = ?, sections = ?, links = ?, images = ?, content_hash = ?, fetched_at = ?
			WHERE id = ?
		`, article.Title, article.Summary, sections, links, images, hash,
			stored.FetchedAt.Format(time.RFC3339), stored.ID)
	} else {
		stored.ID = uuid.New().String()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO articles (`+articleColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, stored.ID, article.URL, article.Title, article.Summary, sections, links, images, hash,
			stored.FetchedAt.Format(time.RFC3339))
	}
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// FindArticleByURL retrieves an article by its source URL.
func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*wikiscrape.StoredArticle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE url = ?", url)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, wikiscrape.Errorf(wikiscrape.ENOTFOUND, "article not found")
	}
	return a, err
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter wikiscrape.ArticleFilter) ([]*wikiscrape.StoredArticle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.Title != nil {
		query.WriteString(` AND title LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(*filter.Title))
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*wikiscrape.StoredArticle{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wikiscrape.Errorf(wikiscrape.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*wikiscrape.StoredArticle, error) {
	var a wikiscrape.StoredArticle
	var sections, links, images, fetchedAt string

	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.Summary, &sections, &links, &images,
		&a.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if a.Sections, err = decodeList(sections, "sections"); err != nil {
		return nil, err
	}
	if a.Links, err = decodeList(links, "links"); err != nil {
		return nil, err
	}
	if a.Images, err = decodeList(images, "images"); err != nil {
		return nil, err
	}
	if a.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &a, nil
}
