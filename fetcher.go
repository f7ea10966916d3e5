package wikiscrape

import (
	"context"
	"fmt"
)

// Page is the raw result of fetching one URL.
type Page struct {
	// URL is the final location after redirects were followed.
	URL string

	// HTML is the decoded response body.
	HTML string
}

// Fetcher retrieves HTML pages from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url, following redirects.
	// Failures are reported as *FetchError.
	// The context controls timeout.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// FetchErrorKind classifies transport failures.
type FetchErrorKind int

// Transport failure kinds.
const (
	ConnectionFailed FetchErrorKind = iota + 1
	TLSFailed
	HTTPStatus
	MalformedResponse
	TooManyRedirects
)

// String returns a short label for the kind.
func (k FetchErrorKind) String() string {
	switch k {
	case ConnectionFailed:
		return "connection failed"
	case TLSFailed:
		return "tls handshake failed"
	case HTTPStatus:
		return "unexpected status"
	case MalformedResponse:
		return "malformed response"
	case TooManyRedirects:
		return "too many redirects"
	default:
		return "fetch failed"
	}
}

// FetchError reports why a URL could not be retrieved.
type FetchError struct {
	Kind FetchErrorKind

	// URL is the location being requested when the failure happened.
	URL string

	// Host is set for ConnectionFailed and TLSFailed.
	Host string

	// StatusLine is set for HTTPStatus.
	StatusLine string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	var reason string
	switch e.Kind {
	case ConnectionFailed:
		reason = fmt.Sprintf("cannot connect to %s", e.Host)
	case TLSFailed:
		reason = fmt.Sprintf("tls handshake with %s failed", e.Host)
	case HTTPStatus:
		reason = fmt.Sprintf("HTTP error: %s", e.StatusLine)
	default:
		reason = e.Kind.String()
	}
	if e.Err != nil {
		reason += ": " + e.Err.Error()
	}
	return fmt.Sprintf("could not retrieve %s: %s", e.URL, reason)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}
