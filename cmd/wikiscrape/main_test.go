package main_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/wikiscrape"
	main "github.com/fwojciec/wikiscrape/cmd/wikiscrape"
	"github.com/fwojciec/wikiscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body><ul class="mw-search-results">
<li><div class="mw-search-result-heading"><a href="/wiki/Rust_(langage)">Rust (langage)</a></div></li>
<li><div class="mw-search-result-heading"><a href="/wiki/Rouille">Rouille</a></div></li>
</ul></body></html>`

// siteFetcher serves the search page for search URLs and a minimal article
// for anything else, titled after the last path segment.
func siteFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
			if strings.Contains(url, "search=") {
				return &wikiscrape.Page{URL: url, HTML: searchPage}, nil
			}
			title := strings.ReplaceAll(url[strings.LastIndex(url, "/")+1:], "_", " ")
			html := fmt.Sprintf(`<html><body><h1 id="firstHeading">%s</h1>
<div id="mw-content-text"><div class="mw-parser-output">
<p>%s est un article.</p>
<h2><span class="mw-headline">Histoire</span></h2>
</div></div></body></html>`, title, title)
			return &wikiscrape.Page{URL: url, HTML: html}, nil
		},
	}
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Fetcher = siteFetcher()
	m.Now = func() time.Time { return runTime }
	return m
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "wikiscrape")
	assert.Contains(t, stdout.String(), "scrape")
	assert.Contains(t, stdout.String(), "search")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, strings.NewReader(""), &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_UnknownFlag(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"scrape", "--bogus"}, strings.NewReader(""), &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("scrape is the default command", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(),
			[]string{"-u", "https://fr.wikipedia.org/wiki/Rust", "-o", out},
			strings.NewReader(""), &stdout, &stderr)
		require.NoError(t, err)

		record, err := os.ReadFile(filepath.Join(out, "Rust", "data.json"))
		require.NoError(t, err)
		assert.Contains(t, string(record), `"title": "Rust"`)
		assert.Contains(t, string(record), `"Histoire"`)
	})

	t.Run("keyword run writes markdown and a report", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		out := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(),
			[]string{"scrape", "-k", "rust", "-n", "2", "-o", out, "--delay", "1ms"},
			strings.NewReader(""), &stdout, &stderr)
		require.NoError(t, err)

		run := filepath.Join(out, "rust_20250314_092653")
		for _, name := range []string{"Rust-langage.md", "Rouille.md", "RESUME_RECHERCHE.md"} {
			_, err := os.Stat(filepath.Join(run, name))
			require.NoError(t, err, name)
		}
	})

	t.Run("fetch failures are reported per URL", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
				return nil, &wikiscrape.FetchError{Kind: wikiscrape.ConnectionFailed, URL: url, Host: "bad.example"}
			},
		}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(),
			[]string{"scrape", "-u", "https://bad.example/wiki/X", "-o", t.TempDir()},
			strings.NewReader(""), &stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stderr.String(), "could not retrieve https://bad.example/wiki/X")
		assert.Contains(t, stdout.String(), "No articles retrieved.")
	})

	t.Run("articles saved with --db are listed", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(),
			[]string{"scrape", "-u", "https://fr.wikipedia.org/wiki/Rust", "-o", t.TempDir(), "--db"},
			strings.NewReader(""), &stdout, &stderr)
		require.NoError(t, err)

		lister := newTestMain(t)
		lister.DBPath = m.DBPath
		stdout.Reset()

		err = lister.Run(context.Background(), []string{"list"}, strings.NewReader(""), &stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Rust")
		assert.Contains(t, stdout.String(), "https://fr.wikipedia.org/wiki/Rust")
	})
}

func TestMain_Run_Search(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"search", "rust", "-n", "2"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t,
		"1. https://fr.wikipedia.org/wiki/Rust_(langage)\n2. https://fr.wikipedia.org/wiki/Rouille\n",
		stdout.String())
}

func TestMain_Run_Config(t *testing.T) {
	t.Parallel()

	t.Run("rejects an invalid configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("transport:\n  timeout: 0s\n"), 0644))

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"search", "rust", "--config", path}, strings.NewReader(""), &stdout, &stderr)

		assert.Error(t, err)
	})
}
