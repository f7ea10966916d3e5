package wikiscrape

import "strings"

// SplitURL decomposes a URL into host and path, stripping an "https://" or
// "http://" prefix. The path starts at the first "/" after the host and
// defaults to "/". It never fails: input without a slash comes back whole
// as the host.
//
//	SplitURL("https://fr.wikipedia.org/wiki/Rust") → ("fr.wikipedia.org", "/wiki/Rust")
//	SplitURL("example.org")                        → ("example.org", "/")
func SplitURL(raw string) (host, path string) {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "http://"); ok {
		s = rest
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, "/"
}
