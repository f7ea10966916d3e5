package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiscrape"
)

// searchResultSelectors are tried in order; later ones match older result
// page layouts.
var searchResultSelectors = []string{
	"div.mw-search-result-heading a",
	"div.mw-search-results li a",
	"ul.mw-search-results li a",
}

// ExtractSearchResults returns up to max article URLs from a full-text
// search results page, in rank order and without duplicates. A page that
// cannot be parsed yields no results.
func ExtractSearchResults(html string, site wikiscrape.Site, max int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var results []string
	seen := make(map[string]bool)
	for _, selector := range searchResultSelectors {
		if max > 0 && len(results) >= max {
			break
		}
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if max > 0 && len(results) >= max {
				return false
			}
			href, _ := sel.Attr("href")
			if !site.IsArticleHref(href) {
				return true
			}
			resolved := site.Resolve(href)
			if seen[resolved] {
				return true
			}
			seen[resolved] = true
			results = append(results, resolved)
			return true
		})
	}
	return results
}
