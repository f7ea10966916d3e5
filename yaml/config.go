// Package yaml loads run configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/wikiscrape"
	"gopkg.in/yaml.v3"
)

// file mirrors wikiscrape.Config with YAML keys. It is decoded over a copy
// of the defaults, so keys missing from the file keep their default value.
type file struct {
	Site struct {
		Origin              string   `yaml:"origin"`
		ArticlePrefix       string   `yaml:"article_prefix"`
		SearchPath          string   `yaml:"search_path"`
		MediaHost           string   `yaml:"media_host"`
		AcceptLanguage      string   `yaml:"accept_language"`
		Untitled            string   `yaml:"untitled"`
		DisambiguationID    string   `yaml:"disambiguation_id"`
		DisambiguationTerms []string `yaml:"disambiguation_terms"`
		BoilerplatePrefix   string   `yaml:"boilerplate_prefix"`
	} `yaml:"site"`
	Extract struct {
		MaxLinks     int `yaml:"max_links"`
		MaxImages    int `yaml:"max_images"`
		MinImageSize int `yaml:"min_image_size"`
	} `yaml:"extract"`
	Transport struct {
		Timeout      time.Duration `yaml:"timeout"`
		MaxRedirects int           `yaml:"max_redirects"`
		UserAgent    string        `yaml:"user_agent"`
	} `yaml:"transport"`
	Scrape struct {
		Delay       time.Duration   `yaml:"delay"`
		RetryDelays []time.Duration `yaml:"retry_delays"`
	} `yaml:"scrape"`
}

// LoadConfig reads the YAML file at path over wikiscrape.DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (wikiscrape.Config, error) {
	if path == "" {
		return wikiscrape.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return wikiscrape.Config{}, fmt.Errorf("read config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML data over wikiscrape.DefaultConfig and validates
// the result. Unknown keys are rejected.
func ParseConfig(data []byte) (wikiscrape.Config, error) {
	f := fromConfig(wikiscrape.DefaultConfig())

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return wikiscrape.Config{}, wikiscrape.Errorf(wikiscrape.EINVALID, "parse config: %v", err)
	}

	cfg := f.toConfig()
	if err := validate(cfg); err != nil {
		return wikiscrape.Config{}, err
	}
	return cfg, nil
}

func validate(cfg wikiscrape.Config) error {
	switch {
	case cfg.Site.Origin == "":
		return wikiscrape.Errorf(wikiscrape.EINVALID, "site.origin required")
	case cfg.Site.ArticlePrefix == "":
		return wikiscrape.Errorf(wikiscrape.EINVALID, "site.article_prefix required")
	case cfg.Extract.MaxLinks < 0, cfg.Extract.MaxImages < 0, cfg.Extract.MinImageSize < 0:
		return wikiscrape.Errorf(wikiscrape.EINVALID, "extract limits must be non-negative")
	case cfg.Transport.Timeout <= 0:
		return wikiscrape.Errorf(wikiscrape.EINVALID, "transport.timeout must be positive")
	case cfg.Transport.MaxRedirects < 0:
		return wikiscrape.Errorf(wikiscrape.EINVALID, "transport.max_redirects must be non-negative")
	case cfg.Scrape.Delay < 0:
		return wikiscrape.Errorf(wikiscrape.EINVALID, "scrape.delay must be non-negative")
	}
	for _, d := range cfg.Scrape.RetryDelays {
		if d < 0 {
			return wikiscrape.Errorf(wikiscrape.EINVALID, "scrape.retry_delays must be non-negative")
		}
	}
	return nil
}

func fromConfig(cfg wikiscrape.Config) file {
	var f file
	f.Site.Origin = cfg.Site.Origin
	f.Site.ArticlePrefix = cfg.Site.ArticlePrefix
	f.Site.SearchPath = cfg.Site.SearchPath
	f.Site.MediaHost = cfg.Site.MediaHost
	f.Site.AcceptLanguage = cfg.Site.AcceptLanguage
	f.Site.Untitled = cfg.Site.Untitled
	f.Site.DisambiguationID = cfg.Site.DisambiguationID
	f.Site.DisambiguationTerms = cfg.Site.DisambiguationTerms
	f.Site.BoilerplatePrefix = cfg.Site.BoilerplatePrefix
	f.Extract.MaxLinks = cfg.Extract.MaxLinks
	f.Extract.MaxImages = cfg.Extract.MaxImages
	f.Extract.MinImageSize = cfg.Extract.MinImageSize
	f.Transport.Timeout = cfg.Transport.Timeout
	f.Transport.MaxRedirects = cfg.Transport.MaxRedirects
	f.Transport.UserAgent = cfg.Transport.UserAgent
	f.Scrape.Delay = cfg.Scrape.Delay
	f.Scrape.RetryDelays = cfg.Scrape.RetryDelays
	return f
}

func (f file) toConfig() wikiscrape.Config {
	return wikiscrape.Config{
		Site: wikiscrape.Site{
			Origin:              f.Site.Origin,
			ArticlePrefix:       f.Site.ArticlePrefix,
			SearchPath:          f.Site.SearchPath,
			MediaHost:           f.Site.MediaHost,
			AcceptLanguage:      f.Site.AcceptLanguage,
			Untitled:            f.Site.Untitled,
			DisambiguationID:    f.Site.DisambiguationID,
			DisambiguationTerms: f.Site.DisambiguationTerms,
			BoilerplatePrefix:   f.Site.BoilerplatePrefix,
		},
		Extract: wikiscrape.ExtractConfig{
			MaxLinks:     f.Extract.MaxLinks,
			MaxImages:    f.Extract.MaxImages,
			MinImageSize: f.Extract.MinImageSize,
		},
		Transport: wikiscrape.TransportConfig{
			Timeout:      f.Transport.Timeout,
			MaxRedirects: f.Transport.MaxRedirects,
			UserAgent:    f.Transport.UserAgent,
		},
		Scrape: wikiscrape.ScrapeConfig{
			Delay:       f.Scrape.Delay,
			RetryDelays: f.Scrape.RetryDelays,
		},
	}
}
