package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// Ensure FileStore implements wikiscrape.ArticleStore at compile time.
var _ wikiscrape.ArticleStore = (*FileStore)(nil)

// Layout selects how a FileStore arranges articles on disk.
type Layout int

const (
	// LayoutFolders writes one directory per article holding the JSON
	// record, the Markdown document and plain-text extracts.
	LayoutFolders Layout = iota

	// LayoutMarkdown writes a single Markdown document per article.
	LayoutMarkdown
)

// Files written per article by LayoutFolders.
const (
	RecordFileName   = "data.json"
	ArticleFileName  = "article.md"
	SummaryFileName  = "resume.txt"
	SectionsFileName = "sections.txt"
	LinksFileName    = "liens.txt"
	ImagesFileName   = "images.txt"
)

// FileStore implements wikiscrape.ArticleStore with atomic update semantics.
// Articles are saved to a temporary directory, then moved into place on
// Commit.
type FileStore struct {
	baseDir string
	name    string
	layout  Layout
	keyword string
	now     func() time.Time

	taken map[string]bool
	saved []ReportEntry
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLayout sets the on-disk layout. Defaults to LayoutFolders.
func WithLayout(l Layout) Option {
	return func(s *FileStore) {
		s.layout = l
	}
}

// WithKeyword records the search keyword the run was made for.
func WithKeyword(keyword string) Option {
	return func(s *FileStore) {
		s.keyword = keyword
	}
}

// WithClock sets the time source used to date documents.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore creates a new FileStore.
// baseDir is the output root, name is the run directory within it; an empty
// name writes into baseDir itself. Files are saved to a temporary directory
// and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, opts ...Option) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		name:    name,
		now:     time.Now,
		taken:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory articles end up in after Commit.
func (s *FileStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) tempDir() string {
	if s.name == "" {
		return filepath.Join(s.baseDir, ".pending.tmp")
	}
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Save writes the article into the temporary directory.
func (s *FileStore) Save(ctx context.Context, article *wikiscrape.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	var rel string
	var err error
	switch s.layout {
	case LayoutMarkdown:
		rel, err = s.saveMarkdown(article)
	default:
		rel, err = s.saveFolder(article)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", article.URL, err)
	}

	s.saved = append(s.saved, ReportEntry{Article: article, Path: rel})
	return nil
}

func (s *FileStore) saveMarkdown(article *wikiscrape.Article) (string, error) {
	rel := s.claim(SafeName(article.Title), ".md")
	content := FormatArticle(article, s.now())
	if err := os.WriteFile(filepath.Join(s.tempDir(), rel), []byte(content), 0644); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *FileStore) saveFolder(article *wikiscrape.Article) (string, error) {
	dirName := s.claim(SafeName(article.Title), "")
	dir := filepath.Join(s.tempDir(), dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	record, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return "", err
	}

	files := []struct {
		name    string
		content string
	}{
		{RecordFileName, string(record)},
		{ArticleFileName, FormatArticle(article, s.now())},
		{SummaryFileName, FormatSummaryText(article)},
		{SectionsFileName, strings.Join(article.Sections, "\n")},
		{LinksFileName, strings.Join(article.Links, "\n")},
		{ImagesFileName, strings.Join(article.Images, "\n")},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return "", err
		}
	}

	return filepath.ToSlash(filepath.Join(dirName, ArticleFileName)), nil
}

// claim returns base+ext, or base_N+ext for the first N that was not
// already used in this run.
func (s *FileStore) claim(base, ext string) string {
	name := base + ext
	for i := 1; s.taken[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
	s.taken[strings.ToLower(name)] = true
	return name
}

// Commit writes the run report when several articles were saved and moves
// everything into the final directory. Entries already present there with
// the same name are replaced; other entries are left alone.
func (s *FileStore) Commit() error {
	if len(s.saved) == 0 {
		return s.Abort()
	}

	if len(s.saved) > 1 {
		report := FormatReport(s.saved, s.keyword, s.now())
		if err := os.WriteFile(filepath.Join(s.tempDir(), ReportFileName), []byte(report), 0644); err != nil {
			return err
		}
	}

	return moveEntries(s.tempDir(), s.Dir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	s.saved = nil
	s.taken = make(map[string]bool)
	return os.RemoveAll(s.tempDir())
}

// moveEntries moves the contents of src into dst. A missing dst is
// created by renaming src itself.
func moveEntries(src, dst string) error {
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.Rename(src, dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		target := filepath.Join(dst, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(src, e.Name()), target); err != nil {
			return err
		}
	}
	return os.Remove(src)
}
