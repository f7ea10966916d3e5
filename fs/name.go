// Package fs provides file-based storage for scraped articles.
package fs

import (
	"strings"
	"time"

	"github.com/kennygrant/sanitize"
)

// TimestampFormat stamps run directory names.
const TimestampFormat = "20060102_150405"

// fallbackName replaces titles that sanitize to nothing.
const fallbackName = "article"

// SafeName turns an article title or search keyword into a single path
// element: accents are flattened, separators become dashes and anything
// else outside [A-Za-z0-9.-] is dropped.
func SafeName(s string) string {
	name := strings.Trim(sanitize.BaseName(s), "-")
	if name == "" {
		return fallbackName
	}
	return name
}

// RunName returns the directory a run's results go in, relative to the
// output root: "<keyword>_<timestamp>" for a keyword search,
// "batch_<timestamp>" for several URLs and "" (the root itself) for a
// single URL.
func RunName(keyword string, urlCount int, now time.Time) string {
	stamp := now.Format(TimestampFormat)
	switch {
	case strings.TrimSpace(keyword) != "":
		return SafeName(keyword) + "_" + stamp
	case urlCount > 1:
		return "batch_" + stamp
	default:
		return ""
	}
}
