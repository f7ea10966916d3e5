package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractLinks returns the article links of the main content, resolved
// against the site origin. With a keyword only relevant links are kept.
func (e *Extractor) extractLinks(doc *goquery.Document, keyword string) []string {
	kw := newKeyword(keyword)

	links := []string{}
	doc.Find("#mw-content-text a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if e.maxLinks > 0 && len(links) >= e.maxLinks {
			return false
		}
		href, _ := sel.Attr("href")
		if !e.site.IsArticleHref(href) {
			return true
		}
		if !kw.relevant(sel) {
			return true
		}
		links = append(links, e.site.Resolve(href))
		return true
	})
	return links
}

// keyword is a lower-cased relevance filter. The zero value accepts every
// link.
type keyword struct {
	text string
	path string
}

func newKeyword(s string) keyword {
	text := strings.ToLower(strings.TrimSpace(s))
	return keyword{
		text: text,
		path: strings.ReplaceAll(text, " ", "_"),
	}
}

// relevant reports whether the anchor mentions the keyword in its text,
// title attribute or href, or failing that, whether the nearest enclosing
// paragraph does.
func (k keyword) relevant(sel *goquery.Selection) bool {
	if k.text == "" {
		return true
	}
	if k.mentionedBy(sel) {
		return true
	}
	return k.inParagraph(sel)
}

func (k keyword) mentionedBy(sel *goquery.Selection) bool {
	if strings.Contains(strings.ToLower(sel.Text()), k.text) {
		return true
	}
	if title, ok := sel.Attr("title"); ok && strings.Contains(strings.ToLower(title), k.text) {
		return true
	}
	href := strings.ToLower(sel.AttrOr("href", ""))
	return strings.Contains(href, k.text) || strings.Contains(href, k.path)
}

func (k keyword) inParagraph(sel *goquery.Selection) bool {
	p := sel.Closest("p")
	if p.Length() == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(p.Text()), k.text)
}
