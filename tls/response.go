package tls

import (
	"bytes"
	"io"
	"mime"
	"net/http/httputil"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/wikiscrape"
	"golang.org/x/net/html/charset"
)

// Response is a framed HTTP/1.1 response.
type Response struct {
	StatusLine string
	StatusCode int
	Body       string

	header []field
}

type field struct {
	name  string
	value string
}

// Header returns the value of the first header named name, compared
// case-insensitively, or "" if there is none.
func (r *Response) Header(name string) string {
	for _, f := range r.header {
		if strings.EqualFold(f.name, name) {
			return f.value
		}
	}
	return ""
}

// IsRedirect reports whether the status asks the client to go elsewhere.
func (r *Response) IsRedirect() bool {
	switch r.StatusCode {
	case 301, 302, 303, 307, 308:
		return true
	}
	return false
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ParseResponse splits raw response bytes into status line, headers and body.
// The header block ends at the first CRLFCRLF, or at the first LFLF when the
// peer uses bare newlines. A chunked body is de-chunked and the body is
// decoded to UTF-8, replacing invalid sequences. A response without a
// header/body boundary is a MalformedResponse.
func ParseResponse(raw []byte) (*Response, error) {
	head, body, ok := cutHead(raw)
	if !ok {
		return nil, &wikiscrape.FetchError{Kind: wikiscrape.MalformedResponse}
	}

	lines := strings.Split(strings.ReplaceAll(toText(head), "\r\n", "\n"), "\n")
	resp := &Response{StatusLine: strings.TrimSpace(lines[0])}
	resp.StatusCode = parseStatusCode(resp.StatusLine)

	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		resp.header = append(resp.header, field{
			name:  strings.TrimSpace(name),
			value: strings.TrimSpace(value),
		})
	}

	if strings.EqualFold(resp.Header("Transfer-Encoding"), "chunked") {
		body = dechunk(body)
	}
	resp.Body = decodeBody(body, resp.Header("Content-Type"))

	return resp, nil
}

func cutHead(raw []byte) (head, body []byte, ok bool) {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return raw[:i], raw[i+4:], true
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[:i], raw[i+2:], true
	}
	return nil, nil, false
}

// parseStatusCode reads the code from "HTTP/1.1 200 OK". Unparsable lines
// yield 0, which is neither success nor redirect.
func parseStatusCode(line string) int {
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// dechunk decodes a chunked body. A truncated stream keeps whatever was
// decoded before the error; a body that is not chunked at all is returned
// untouched.
func dechunk(body []byte) []byte {
	decoded, err := io.ReadAll(httputil.NewChunkedReader(bytes.NewReader(body)))
	if err != nil && len(decoded) == 0 {
		return body
	}
	return decoded
}

// decodeBody converts body to UTF-8 using the charset declared in the
// Content-Type header, then replaces any invalid sequence with U+FFFD.
func decodeBody(body []byte, contentType string) string {
	if label := declaredCharset(contentType); label != "" {
		if enc, name := charset.Lookup(label); enc != nil && name != "utf-8" {
			if decoded, err := enc.NewDecoder().Bytes(body); err == nil {
				body = decoded
			}
		}
	}
	return toText(body)
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func toText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
