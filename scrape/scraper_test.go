package scrape_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/goquery"
	"github.com/fwojciec/wikiscrape/mock"
	"github.com/fwojciec/wikiscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleExtractor uses the last path segment of the page URL as the title.
func titleExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(page *wikiscrape.Page, _ string) *wikiscrape.Article {
			return &wikiscrape.Article{
				URL:   page.URL,
				Title: page.URL[strings.LastIndex(page.URL, "/")+1:],
			}
		},
	}
}

func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
			return &wikiscrape.Page{URL: url, HTML: "<html></html>"}, nil
		},
	}
}

func TestScraper_ScrapeAll(t *testing.T) {
	t.Parallel()

	t.Run("scrapes urls in order and reports progress", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher:   echoFetcher(),
			Extractor: titleExtractor(),
		}

		var events []wikiscrape.ScrapeProgress
		articles, err := s.ScrapeAll(context.Background(), []string{
			"https://fr.wikipedia.org/wiki/Rust",
			"https://fr.wikipedia.org/wiki/Go",
		}, "", func(p wikiscrape.ScrapeProgress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "Rust", articles[0].Title)
		assert.Equal(t, "Go", articles[1].Title)

		require.Len(t, events, 2)
		assert.Equal(t, 1, events[0].Completed)
		assert.Equal(t, 2, events[0].Total)
		assert.Same(t, articles[0], events[0].Article)
		assert.Equal(t, 2, events[1].Completed)
	})

	t.Run("passes the keyword to the extractor", func(t *testing.T) {
		t.Parallel()

		var got string
		s := &scrape.Scraper{
			Fetcher: echoFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(page *wikiscrape.Page, keyword string) *wikiscrape.Article {
					got = keyword
					return &wikiscrape.Article{URL: page.URL, Title: "Rust"}
				},
			},
		}

		_, err := s.ScrapeAll(context.Background(), []string{"https://fr.wikipedia.org/wiki/Rust"}, "rust", nil)

		require.NoError(t, err)
		assert.Equal(t, "rust", got)
	})

	t.Run("continues after a failed url", func(t *testing.T) {
		t.Parallel()

		fetchErr := &wikiscrape.FetchError{Kind: wikiscrape.HTTPStatus, URL: "https://fr.wikipedia.org/wiki/Missing", StatusLine: "HTTP/1.1 404 Not Found"}
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
					if strings.HasSuffix(url, "Missing") {
						return nil, fetchErr
					}
					return &wikiscrape.Page{URL: url}, nil
				},
			},
			Extractor: titleExtractor(),
		}

		var events []wikiscrape.ScrapeProgress
		articles, err := s.ScrapeAll(context.Background(), []string{
			"https://fr.wikipedia.org/wiki/Missing",
			"https://fr.wikipedia.org/wiki/Rust",
		}, "", func(p wikiscrape.ScrapeProgress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Rust", articles[0].Title)

		require.Len(t, events, 2)
		assert.ErrorIs(t, events[0].Error, fetchErr)
		assert.Nil(t, events[0].Article)
		assert.NoError(t, events[1].Error)
	})

	t.Run("skips repeated urls without fetching them", func(t *testing.T) {
		t.Parallel()

		var fetched []string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
					fetched = append(fetched, url)
					return &wikiscrape.Page{URL: url}, nil
				},
			},
			Extractor: titleExtractor(),
		}

		var events []wikiscrape.ScrapeProgress
		articles, err := s.ScrapeAll(context.Background(), []string{
			"https://fr.wikipedia.org/wiki/Rust",
			"https://fr.wikipedia.org/wiki/Rust/",
			"HTTPS://FR.WIKIPEDIA.ORG/WIKI/RUST",
		}, "", func(p wikiscrape.ScrapeProgress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.Equal(t, []string{"https://fr.wikipedia.org/wiki/Rust"}, fetched)
		require.Len(t, events, 3)
		assert.True(t, events[1].Duplicate)
		assert.True(t, events[2].Duplicate)
	})

	t.Run("drops articles whose title was already seen", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: echoFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(page *wikiscrape.Page, _ string) *wikiscrape.Article {
					title := "Rust (langage)"
					if strings.HasSuffix(page.URL, "Rouille") {
						title = "Rouille"
					}
					if strings.HasSuffix(page.URL, "RUST_LANG") {
						title = "RUST (LANGAGE)"
					}
					return &wikiscrape.Article{URL: page.URL, Title: title}
				},
			},
		}

		var events []wikiscrape.ScrapeProgress
		articles, err := s.ScrapeAll(context.Background(), []string{
			"https://fr.wikipedia.org/wiki/Rust_(langage)",
			"https://fr.wikipedia.org/wiki/RUST_LANG",
			"https://fr.wikipedia.org/wiki/Rouille",
		}, "", func(p wikiscrape.ScrapeProgress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "Rust (langage)", articles[0].Title)
		assert.Equal(t, "Rouille", articles[1].Title)

		require.Len(t, events, 3)
		assert.True(t, events[1].Duplicate)
		assert.Equal(t, "RUST (LANGAGE)", events[1].Article.Title)
	})

	t.Run("waits on the rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		s := &scrape.Scraper{
			Fetcher:   echoFetcher(),
			Extractor: titleExtractor(),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, host string) error {
					hosts = append(hosts, host)
					return nil
				},
			},
		}

		_, err := s.ScrapeAll(context.Background(), []string{
			"https://fr.wikipedia.org/wiki/Rust",
			"https://en.wikipedia.org/wiki/Go",
		}, "", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"fr.wikipedia.org", "en.wikipedia.org"}, hosts)
	})

	t.Run("retries failed fetches with the configured delays", func(t *testing.T) {
		t.Parallel()

		var attempts int
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
					attempts++
					if attempts == 1 {
						return nil, errors.New("reset")
					}
					return &wikiscrape.Page{URL: url}, nil
				},
			},
			Extractor:   titleExtractor(),
			RetryDelays: []time.Duration{0},
		}

		articles, err := s.ScrapeAll(context.Background(), []string{"https://fr.wikipedia.org/wiki/Rust"}, "", nil)

		require.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.Equal(t, 2, attempts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
					cancel()
					return &wikiscrape.Page{URL: url}, nil
				},
			},
			Extractor: titleExtractor(),
		}

		articles, err := s.ScrapeAll(ctx, []string{
			"https://fr.wikipedia.org/wiki/Rust",
			"https://fr.wikipedia.org/wiki/Go",
		}, "", nil)

		require.ErrorIs(t, err, context.Canceled)
		require.Len(t, articles, 1)
		assert.Equal(t, "Rust", articles[0].Title)
	})

	t.Run("extracts real pages end to end", func(t *testing.T) {
		t.Parallel()

		html := `<h1 id="firstHeading">Rust</h1>
<div id="mw-content-text"><div class="mw-parser-output">
<p>Rust est un langage. Voir <a href="/wiki/Cargo">Cargo</a>.</p>
<h2><span class="mw-headline">Histoire</span></h2>
</div></div>`
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
					return &wikiscrape.Page{URL: url, HTML: html}, nil
				},
			},
			Extractor: goquery.NewExtractor(wikiscrape.DefaultSite()),
		}

		articles, err := s.ScrapeAll(context.Background(), []string{"https://fr.wikipedia.org/wiki/Rust"}, "", nil)

		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Rust", articles[0].Title)
		assert.Equal(t, "Rust est un langage. Voir Cargo.", articles[0].Summary)
		assert.Equal(t, []string{"Histoire"}, articles[0].Sections)
		assert.Equal(t, []string{"https://fr.wikipedia.org/wiki/Cargo"}, articles[0].Links)
	})
}
