package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/mock"
	wsslog "github.com/fwojciec/wikiscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with final url, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*wikiscrape.Page, error) {
				return &wikiscrape.Page{URL: "https://fr.wikipedia.org/wiki/Rust_(langage)", HTML: "<html>content</html>"}, nil
			},
		}

		fetcher := wsslog.NewLoggingFetcher(inner, logger)
		page, err := fetcher.Fetch(context.Background(), "https://fr.wikipedia.org/wiki/Rust")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", page.HTML)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://fr.wikipedia.org/wiki/Rust")
		assert.Contains(t, output, "final=https://fr.wikipedia.org/wiki/Rust_(langage)")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs fetch error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*wikiscrape.Page, error) {
				return nil, &wikiscrape.FetchError{Kind: wikiscrape.ConnectionFailed, URL: url, Host: "fr.wikipedia.org"}
			},
		}

		fetcher := wsslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://fr.wikipedia.org/wiki/Rust")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "cannot connect to fr.wikipedia.org")
	})
}
