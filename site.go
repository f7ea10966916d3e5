package wikiscrape

import "strings"

// Site describes the markup and URL conventions of one encyclopedia
// deployment. Extraction heuristics and search are tuned against it.
type Site struct {
	// Origin is the scheme-qualified site root, without trailing slash.
	Origin string `json:"origin"`

	// ArticlePrefix is the path prefix shared by all article URLs.
	ArticlePrefix string `json:"articlePrefix"`

	// SearchPath is the full-text search endpoint.
	SearchPath string `json:"searchPath"`

	// MediaHost is the only host content images are accepted from.
	MediaHost string `json:"mediaHost"`

	// AcceptLanguage is sent with every request.
	AcceptLanguage string `json:"acceptLanguage"`

	// Untitled replaces a missing article heading.
	Untitled string `json:"untitled"`

	// DisambiguationID is the id of the disambiguation notice banner.
	DisambiguationID string `json:"disambiguationId"`

	// DisambiguationTerms must all appear in a banner's lower-cased text
	// for it to count as a disambiguation notice.
	DisambiguationTerms []string `json:"disambiguationTerms"`

	// BoilerplatePrefix marks lead paragraphs that are editorial notices.
	BoilerplatePrefix string `json:"boilerplatePrefix"`
}

// DefaultSite returns the French-language encyclopedia.
func DefaultSite() Site {
	return Site{
		Origin:              "https://fr.wikipedia.org",
		ArticlePrefix:       "/wiki/",
		SearchPath:          "/w/index.php",
		MediaHost:           "upload.wikimedia.org",
		AcceptLanguage:      "fr,fr-FR;q=0.8,en-US;q=0.5,en;q=0.3",
		Untitled:            "Sans titre",
		DisambiguationID:    "homonymie",
		DisambiguationTerms: []string{"page", "homonymie"},
		BoilerplatePrefix:   "Cet article",
	}
}

// Resolve absolute-izes a link or image source found on the site.
// Protocol-relative sources get the origin's scheme, root-relative ones the
// origin itself. Anything else is returned unchanged.
func (s Site) Resolve(href string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return s.scheme() + ":" + href
	case strings.HasPrefix(href, "/"):
		return s.Origin + href
	default:
		return href
	}
}

// IsArticleHref reports whether href points at an article: it must carry the
// article prefix and contain neither a namespace colon nor a fragment.
func (s Site) IsArticleHref(href string) bool {
	return strings.HasPrefix(href, s.ArticlePrefix) &&
		!strings.Contains(href, ":") &&
		!strings.Contains(href, "#")
}

// SearchURL returns the full-text search page URL for query.
func (s Site) SearchURL(query string) string {
	return s.Origin + s.SearchPath + "?search=" + EncodeQuery(query, '+') +
		"&title=Special%3ASearch&fulltext=1"
}

// ArticleURL guesses the article URL for query by using it as a title.
func (s Site) ArticleURL(query string) string {
	return s.Origin + s.ArticlePrefix + EncodeQuery(strings.TrimSpace(query), '_')
}

func (s Site) scheme() string {
	if i := strings.Index(s.Origin, "://"); i > 0 {
		return s.Origin[:i]
	}
	return "https"
}
