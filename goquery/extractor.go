// Package goquery provides the goquery-based implementation of
// wikiscrape.Extractor and the search result parser.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiscrape"
)

// Default extraction limits.
const (
	DefaultMaxLinks     = 50
	DefaultMaxImages    = 20
	DefaultMinImageSize = 100
)

// Ensure Extractor implements wikiscrape.Extractor at compile time.
var _ wikiscrape.Extractor = (*Extractor)(nil)

// Extractor builds article records from encyclopedia pages using a fixed
// pipeline of heuristics tuned to the site's markup.
type Extractor struct {
	site         wikiscrape.Site
	maxLinks     int
	maxImages    int
	minImageSize int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxLinks caps the number of links kept per article.
func WithMaxLinks(n int) Option {
	return func(e *Extractor) {
		e.maxLinks = n
	}
}

// WithMaxImages caps the number of images kept per article.
func WithMaxImages(n int) Option {
	return func(e *Extractor) {
		e.maxImages = n
	}
}

// WithMinImageSize sets the smallest declared width or height, in pixels,
// an image may have.
func WithMinImageSize(px int) Option {
	return func(e *Extractor) {
		e.minImageSize = px
	}
}

// NewExtractor creates an Extractor for site.
func NewExtractor(site wikiscrape.Site, opts ...Option) *Extractor {
	e := &Extractor{
		site:         site,
		maxLinks:     DefaultMaxLinks,
		maxImages:    DefaultMaxImages,
		minImageSize: DefaultMinImageSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the article record for page. It never fails: a page that
// cannot be parsed, or lacks the expected markup, yields empty fields.
func (e *Extractor) Extract(page *wikiscrape.Page, keyword string) *wikiscrape.Article {
	article := &wikiscrape.Article{
		URL:      page.URL,
		Title:    e.site.Untitled,
		Sections: []string{},
		Links:    []string{},
		Images:   []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return article
	}

	if title := extractTitle(doc); title != "" {
		article.Title = title
	}
	article.Summary = e.extractSummary(doc)
	article.Sections = extractSections(doc)
	article.Links = e.extractLinks(doc, keyword)
	article.Images = e.extractImages(doc)

	return article
}

func extractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("h1#firstHeading, h1.firstHeading").First().Text())
}

// extractSections returns the text of every section headline. Pages
// rendered without .mw-headline spans use the heading elements inside
// div.mw-heading instead.
func extractSections(doc *goquery.Document) []string {
	headings := doc.Find(".mw-headline")
	if headings.Length() == 0 {
		headings = doc.Find("div.mw-heading h2, div.mw-heading h3")
	}

	sections := []string{}
	headings.Each(func(_ int, sel *goquery.Selection) {
		if text, ok := sectionTitle(sel); ok {
			sections = append(sections, text)
		}
	})
	return sections
}

// sectionTitle returns the trimmed heading text. Empty and single-character
// texts are markup artifacts rather than headings.
func sectionTitle(sel *goquery.Selection) (string, bool) {
	text := strings.TrimSpace(sel.Text())
	if len(text) <= 1 {
		return "", false
	}
	return text, true
}
