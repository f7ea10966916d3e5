package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/wikiscrape"
	"github.com/fwojciec/wikiscrape/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, wikiscrape.DefaultConfig(), cfg)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("file overrides the keys it sets", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
site:
  origin: https://en.wikipedia.org
  untitled: Untitled
extract:
  max_links: 10
transport:
  timeout: 5s
scrape:
  delay: 250ms
  retry_delays: [1s, 2s]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := yaml.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "https://en.wikipedia.org", cfg.Site.Origin)
		assert.Equal(t, "Untitled", cfg.Site.Untitled)
		assert.Equal(t, 10, cfg.Extract.MaxLinks)
		assert.Equal(t, 5*time.Second, cfg.Transport.Timeout)
		assert.Equal(t, 250*time.Millisecond, cfg.Scrape.Delay)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, cfg.Scrape.RetryDelays)

		defaults := wikiscrape.DefaultConfig()
		assert.Equal(t, defaults.Site.ArticlePrefix, cfg.Site.ArticlePrefix)
		assert.Equal(t, defaults.Extract.MaxImages, cfg.Extract.MaxImages)
		assert.Equal(t, defaults.Transport.UserAgent, cfg.Transport.UserAgent)
	})
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty document returns defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, wikiscrape.DefaultConfig(), cfg)
	})

	invalid := []struct {
		name    string
		content string
	}{
		{"unknown key", "extract:\n  max_link: 3\n"},
		{"malformed duration", "transport:\n  timeout: soon\n"},
		{"negative delay", "scrape:\n  delay: -1s\n"},
		{"zero timeout", "transport:\n  timeout: 0s\n"},
		{"negative cap", "extract:\n  max_images: -1\n"},
		{"blank origin", "site:\n  origin: \"\"\n"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := yaml.ParseConfig([]byte(tt.content))
			require.Error(t, err)
			assert.Equal(t, wikiscrape.EINVALID, wikiscrape.ErrorCode(err))
		})
	}
}
