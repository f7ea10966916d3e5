package wikiscrape

import (
	"context"
	"strings"
)

// Searcher resolves a free-text query into candidate article URLs.
type Searcher interface {
	// Search returns at most max article URLs for query, deduplicated and in
	// rank order. Implementations fall back to a direct title guess rather
	// than returning an empty list. Errors are limited to an empty query
	// (EINVALID) and context cancellation.
	Search(ctx context.Context, query string, max int) ([]string, error)
}

// EncodeQuery percent-encodes s for use in a URL. Unreserved bytes
// (A-Z a-z 0-9 - _ . ~) are kept, a space becomes the given replacement
// ('+' in query strings, '_' in article titles), and every other byte of the
// UTF-8 encoding is written as %XX.
func EncodeQuery(s string, space byte) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte(space)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}

// DedupKey returns the key under which two URLs are considered the same
// search hit: lower-cased, trailing slashes removed.
func DedupKey(url string) string {
	return strings.TrimRight(strings.ToLower(url), "/")
}

// DedupeURLs removes URLs whose DedupKey was already seen, keeping the first
// occurrence, and truncates the result to max entries (max <= 0 means no limit).
func DedupeURLs(urls []string, max int) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if max > 0 && len(out) >= max {
			break
		}
		key := DedupKey(u)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, u)
	}
	return out
}
