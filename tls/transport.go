// Package tls provides an implementation of wikiscrape.Fetcher that speaks
// HTTP/1.1 directly over a crypto/tls connection. Every request opens its own
// connection and asks the server to close it once the response is sent, so
// the end of the stream marks the end of the response.
package tls

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/fwojciec/wikiscrape"
)

const (
	// DefaultFetchTimeout bounds a whole fetch, redirects included.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxRedirects is how many redirect hops a fetch follows.
	DefaultMaxRedirects = 10

	// DefaultPollInterval is how long a single read waits for data.
	DefaultPollInterval = 100 * time.Millisecond

	defaultPort   = "443"
	defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Ensure Transport implements wikiscrape.Fetcher at compile time.
var _ wikiscrape.Fetcher = (*Transport)(nil)

// Transport retrieves pages over HTTPS without net/http.
type Transport struct {
	roots          *x509.CertPool
	timeout        time.Duration
	poll           time.Duration
	maxRedirects   int
	userAgent      string
	acceptLanguage string
	dialer         net.Dialer
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the deadline for a whole fetch.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

// WithRootCAs sets the certificates trusted when verifying servers.
// Defaults to the system trust store.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(t *Transport) {
		t.roots = pool
	}
}

// WithMaxRedirects sets how many redirect hops are followed.
func WithMaxRedirects(n int) Option {
	return func(t *Transport) {
		t.maxRedirects = n
	}
}

// WithUserAgent sets the User-Agent request header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// WithAcceptLanguage sets the Accept-Language request header.
func WithAcceptLanguage(lang string) Option {
	return func(t *Transport) {
		t.acceptLanguage = lang
	}
}

// WithPollInterval sets how long one read waits before retrying.
func WithPollInterval(d time.Duration) Option {
	return func(t *Transport) {
		t.poll = d
	}
}

// NewTransport creates a Transport.
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		timeout:        DefaultFetchTimeout,
		poll:           DefaultPollInterval,
		maxRedirects:   DefaultMaxRedirects,
		userAgent:      wikiscrape.DefaultUserAgent,
		acceptLanguage: wikiscrape.DefaultSite().AcceptLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.roots == nil {
		if pool, err := x509.SystemCertPool(); err == nil {
			t.roots = pool
		}
	}

	return t
}

// Fetch retrieves the page at rawURL, following redirects. The returned
// page carries the URL it was finally served from.
func (t *Transport) Fetch(ctx context.Context, rawURL string) (*wikiscrape.Page, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	host, path := wikiscrape.SplitURL(rawURL)
	for hops := 0; ; hops++ {
		resp, err := t.roundTrip(ctx, host, path)
		if err != nil {
			return nil, err
		}

		if location := resp.Header("Location"); resp.IsRedirect() && location != "" {
			if hops >= t.maxRedirects {
				return nil, &wikiscrape.FetchError{
					Kind: wikiscrape.TooManyRedirects,
					URL:  pageURL(host, path),
					Host: host,
				}
			}
			host, path = resolveLocation(host, path, location)
			continue
		}

		if !resp.IsSuccess() {
			return nil, &wikiscrape.FetchError{
				Kind:       wikiscrape.HTTPStatus,
				URL:        pageURL(host, path),
				Host:       host,
				StatusLine: resp.StatusLine,
			}
		}

		return &wikiscrape.Page{URL: pageURL(host, path), HTML: resp.Body}, nil
	}
}

// roundTrip performs one request on a fresh connection.
func (t *Transport) roundTrip(ctx context.Context, host, path string) (*Response, error) {
	target := pageURL(host, path)
	addr, serverName := dialAddress(host)

	raw, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &wikiscrape.FetchError{
			Kind: wikiscrape.ConnectionFailed,
			URL:  target,
			Host: host,
			Err:  err,
		}
	}
	conn := tls.Client(raw, &tls.Config{
		ServerName: serverName,
		RootCAs:    t.roots,
		MinVersion: tls.VersionTLS12,
	})
	defer conn.Close()

	x := newExchange(conn, target, host, t.request(host, path), t.poll)
	data, err := x.run(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := ParseResponse(data)
	if err != nil {
		var fe *wikiscrape.FetchError
		if errors.As(err, &fe) {
			fe.URL = target
			fe.Host = host
		}
		return nil, err
	}
	return resp, nil
}

func (t *Transport) request(host, path string) []byte {
	return fmt.Appendf(nil,
		"GET %s HTTP/1.1\r\n"+
			"Host: %s\r\n"+
			"User-Agent: %s\r\n"+
			"Accept: %s\r\n"+
			"Accept-Language: %s\r\n"+
			"Connection: close\r\n"+
			"\r\n",
		path, host, t.userAgent, defaultAccept, t.acceptLanguage)
}

// dialAddress returns the address to dial and the name to present for SNI
// and certificate verification. A host without a port gets 443.
func dialAddress(host string) (addr, serverName string) {
	if name, _, err := net.SplitHostPort(host); err == nil {
		return host, name
	}
	return net.JoinHostPort(host, defaultPort), host
}

// resolveLocation resolves a Location header against the URL that produced
// it. Absolute, scheme-relative and root-relative targets are all accepted.
func resolveLocation(host, path, location string) (string, string) {
	base, err := url.Parse(pageURL(host, path))
	if err != nil {
		return wikiscrape.SplitURL(location)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return wikiscrape.SplitURL(location)
	}
	return wikiscrape.SplitURL(base.ResolveReference(ref).String())
}

func pageURL(host, path string) string {
	return "https://" + host + path
}
