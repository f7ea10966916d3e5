package wikiscrape

import "time"

// Config holds the tunables of a scraping run.
type Config struct {
	Site      Site            `json:"site"`
	Extract   ExtractConfig   `json:"extract"`
	Transport TransportConfig `json:"transport"`
	Scrape    ScrapeConfig    `json:"scrape"`
}

// ExtractConfig bounds what the extractor keeps from a page.
type ExtractConfig struct {
	MaxLinks     int `json:"maxLinks"`
	MaxImages    int `json:"maxImages"`
	MinImageSize int `json:"minImageSize"`
}

// TransportConfig configures the TLS transport.
type TransportConfig struct {
	Timeout      time.Duration `json:"timeout"`
	MaxRedirects int           `json:"maxRedirects"`
	UserAgent    string        `json:"userAgent"`
}

// ScrapeConfig configures batch orchestration.
type ScrapeConfig struct {
	// Delay is the minimum pause between two requests to the same host.
	Delay time.Duration `json:"delay"`

	// RetryDelays are waited between attempts on a failed fetch.
	// Empty means a failure is final.
	RetryDelays []time.Duration `json:"retryDelays"`
}

// DefaultUserAgent is a realistic desktop browser identification.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		Site: DefaultSite(),
		Extract: ExtractConfig{
			MaxLinks:     50,
			MaxImages:    20,
			MinImageSize: 100,
		},
		Transport: TransportConfig{
			Timeout:      30 * time.Second,
			MaxRedirects: 10,
			UserAgent:    DefaultUserAgent,
		},
		Scrape: ScrapeConfig{
			Delay: time.Second,
		},
	}
}
