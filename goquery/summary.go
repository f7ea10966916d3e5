package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wikiscrape"
)

// extractSummary collects the lead of the article: banners and paragraphs
// that are direct children of the content container, up to the first
// section heading.
func (e *Extractor) extractSummary(doc *goquery.Document) string {
	container := doc.Find("div.mw-parser-output").First()
	if container.Length() == 0 {
		return ""
	}

	var parts []string
	container.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if isSectionBoundary(child) {
			return false
		}
		if text, ok := e.leadText(child); ok {
			parts = append(parts, text)
		}
		return true
	})

	return strings.Join(parts, "\n\n")
}

// leadText returns the text a lead element contributes to the summary.
func (e *Extractor) leadText(sel *goquery.Selection) (string, bool) {
	switch {
	case isBanner(sel):
		if isDisambiguationNotice(sel, e.site) {
			return "", false
		}
		text := strings.TrimSpace(sel.Text())
		return text, text != ""
	case goquery.NodeName(sel) == "p":
		text := strings.TrimSpace(sel.Text())
		if text == "" || isBoilerplate(text, e.site) {
			return "", false
		}
		return text, true
	}
	return "", false
}

// isSectionBoundary reports whether sel starts the first section: an h2, or
// the div wrapper newer skins put around headings.
func isSectionBoundary(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "h2":
		return true
	case "div":
		class, _ := sel.Attr("class")
		return strings.Contains(class, "mw-heading") || strings.Contains(class, "mw-headline")
	}
	return false
}

// isBanner reports a hatnote, notice banner or metadata box.
func isBanner(sel *goquery.Selection) bool {
	if goquery.NodeName(sel) != "div" {
		return false
	}
	class, _ := sel.Attr("class")
	return strings.Contains(class, "hatnote") ||
		strings.Contains(class, "bandeau-container") ||
		strings.Contains(class, "metadata")
}

// isDisambiguationNotice reports the banner that announces a disambiguation
// page, either by id or because its text names every disambiguation term.
func isDisambiguationNotice(sel *goquery.Selection, site wikiscrape.Site) bool {
	if id, _ := sel.Attr("id"); site.DisambiguationID != "" && id == site.DisambiguationID {
		return true
	}
	if len(site.DisambiguationTerms) == 0 {
		return false
	}
	text := strings.ToLower(sel.Text())
	for _, term := range site.DisambiguationTerms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

func isBoilerplate(text string, site wikiscrape.Site) bool {
	return site.BoilerplatePrefix != "" && strings.HasPrefix(text, site.BoilerplatePrefix)
}
