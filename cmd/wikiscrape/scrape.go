package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/fs"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls, keyword, err := c.sources(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiscrape.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		return errors.New("no URLs provided")
	}

	layout := fs.LayoutFolders
	if keyword != "" {
		layout = fs.LayoutMarkdown
	}
	store := fs.NewFileStore(c.Output, fs.RunName(keyword, len(urls), deps.Now()),
		fs.WithLayout(layout),
		fs.WithKeyword(keyword),
		fs.WithClock(deps.Now),
	)

	fmt.Fprintf(deps.Stdout, "Scraping %d page(s) into %s\n", len(urls), store.Dir())

	articles, err := deps.Scraper.ScrapeAll(deps.Ctx, urls, keyword, func(p wikiscrape.ScrapeProgress) {
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", p.Completed, p.Total, p.URL)
		switch {
		case p.Error != nil:
			var fetchErr *wikiscrape.FetchError
			if errors.As(p.Error, &fetchErr) {
				fmt.Fprintf(deps.Stderr, "  %v\n", fetchErr)
			} else {
				fmt.Fprintf(deps.Stderr, "  could not retrieve %s: %v\n", p.URL, p.Error)
			}
		case p.Duplicate && p.Article != nil:
			fmt.Fprintf(deps.Stdout, "  skipped, same title as an earlier article: %s\n", p.Article.Title)
		case p.Duplicate:
			fmt.Fprintln(deps.Stdout, "  skipped, URL already in this batch")
		default:
			fmt.Fprintf(deps.Stdout, "  %s (%d sections, %d links, %d images)\n",
				p.Article.Title, len(p.Article.Sections), len(p.Article.Links), len(p.Article.Images))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	if err := c.save(deps, store, articles); err != nil {
		fmt.Fprintf(deps.Stderr, "error saving: %s\n", wikiscrape.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles retrieved.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Saved %d article(s) in %s\n", len(articles), store.Dir())
	return nil
}

func (c *ScrapeCmd) save(deps *Dependencies, store wikiscrape.ArticleStore, articles []*wikiscrape.Article) error {
	for _, a := range articles {
		if err := store.Save(deps.Ctx, a); err != nil {
			_ = store.Abort()
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return err
	}

	if !c.DB || deps.Articles == nil {
		return nil
	}
	for _, a := range articles {
		if _, err := deps.Articles.SaveArticle(deps.Ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// sources resolves the URLs to scrape and the keyword they were found
// for, if any. Flags are consulted in order: keyword, file, URL list.
func (c *ScrapeCmd) sources(deps *Dependencies) ([]string, string, error) {
	switch {
	case strings.TrimSpace(c.Keyword) != "":
		keyword := strings.TrimSpace(c.Keyword)
		urls, err := search(deps, keyword, c.Number)
		return urls, keyword, err
	case c.File != "":
		urls, err := readURLFile(c.File)
		return urls, "", err
	case c.URLs != "":
		return splitURLs(c.URLs), "", nil
	default:
		return c.interactive(deps)
	}
}

// search runs a keyword search and prints the numbered hits.
func search(deps *Dependencies, keyword string, max int) ([]string, error) {
	fmt.Fprintf(deps.Stdout, "Searching for %q\n", keyword)
	urls, err := deps.Searcher.Search(deps.Ctx, keyword, max)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(deps.Stdout, "%d result(s):\n", len(urls))
	for i, u := range urls {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n", i+1, u)
	}
	return urls, nil
}

// readURLFile reads one URL per line, skipping blank lines.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wikiscrape.Errorf(wikiscrape.EINVALID, "cannot read URL file: %v", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, scanner.Err()
}

func splitURLs(s string) []string {
	var urls []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
