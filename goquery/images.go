package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".svg", ".gif"}

// iconMarkers identify interface sprites, logos and fixed-size icon
// thumbnails. Thumbnail widths are matched with their leading slash so
// that "/220px-" is not mistaken for "/20px-".
var iconMarkers = []string{"/static/images/", "/icons/", "Icon_", "icon", "logo", "/20px-", "/15px-"}

// extractImages returns the content images of the page in document order.
func (e *Extractor) extractImages(doc *goquery.Document) []string {
	images := []string{}
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if e.maxImages > 0 && len(images) >= e.maxImages {
			return false
		}
		if src, ok := e.contentImage(sel); ok {
			images = append(images, src)
		}
		return true
	})
	return images
}

// contentImage runs the image filters in order and returns the absolute
// source of an image that passes all of them.
func (e *Extractor) contentImage(sel *goquery.Selection) (string, bool) {
	src, _ := sel.Attr("src")
	if isUndersized(sel, e.minImageSize) {
		return "", false
	}
	if !isRemoteSource(src) || !hasImageExtension(src) || hasIconMarker(src) {
		return "", false
	}
	abs := e.site.Resolve(src)
	if !isOnHost(abs, e.site.MediaHost) {
		return "", false
	}
	return abs, true
}

// isUndersized reports an image whose declared width or height is a number
// below min. Missing or non-numeric dimensions never reject.
func isUndersized(sel *goquery.Selection, min int) bool {
	for _, attr := range []string{"width", "height"} {
		v, ok := sel.Attr(attr)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n < min {
			return true
		}
	}
	return false
}

// isRemoteSource accepts protocol-relative and http(s) sources only.
func isRemoteSource(src string) bool {
	return strings.HasPrefix(src, "//") || strings.HasPrefix(src, "http")
}

func hasImageExtension(src string) bool {
	for _, ext := range imageExtensions {
		if strings.Contains(src, ext) {
			return true
		}
	}
	return false
}

func hasIconMarker(src string) bool {
	for _, marker := range iconMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}

func isOnHost(src, host string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), host)
}
