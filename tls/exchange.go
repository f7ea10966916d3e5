package tls

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// state is a step of a single request/response exchange.
type state int

const (
	stateHandshaking state = iota
	stateRequesting
	stateReading
	stateComplete
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateHandshaking:
		return "handshaking"
	case stateRequesting:
		return "requesting"
	case stateReading:
		return "reading"
	case stateComplete:
		return "complete"
	default:
		return "failed"
	}
}

// secureConn is the part of *tls.Conn an exchange drives.
type secureConn interface {
	HandshakeContext(ctx context.Context) error
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// exchange performs one request/response over one connection as an explicit
// state machine: Handshaking → Requesting → Reading → Complete, or Failed
// from any step. Reads wait at most one poll interval; an expired read
// deadline means nothing was ready yet and the read is simply retried.
type exchange struct {
	conn    secureConn
	url     string
	host    string
	request []byte
	poll    time.Duration

	state    state
	written  int
	response bytes.Buffer
	buf      []byte
	err      error
}

func newExchange(conn secureConn, url, host string, request []byte, poll time.Duration) *exchange {
	return &exchange{
		conn:    conn,
		url:     url,
		host:    host,
		request: request,
		poll:    poll,
		buf:     make([]byte, 8192),
	}
}

// run drives the state machine until the peer closes the stream or a step
// fails, and returns the raw response bytes.
func (x *exchange) run(ctx context.Context) ([]byte, error) {
	for {
		switch x.state {
		case stateHandshaking:
			x.handshake(ctx)
		case stateRequesting:
			x.write(ctx)
		case stateReading:
			x.read(ctx)
		case stateComplete:
			return x.response.Bytes(), nil
		case stateFailed:
			return nil, x.err
		}
	}
}

func (x *exchange) handshake(ctx context.Context) {
	if err := x.conn.HandshakeContext(ctx); err != nil {
		x.fail(wikiscrape.TLSFailed, err)
		return
	}
	x.state = stateRequesting
}

func (x *exchange) write(ctx context.Context) {
	deadline, _ := ctx.Deadline()
	if err := x.conn.SetWriteDeadline(deadline); err != nil {
		x.fail(wikiscrape.ConnectionFailed, err)
		return
	}

	n, err := x.conn.Write(x.request[x.written:])
	x.written += n
	if err != nil {
		x.fail(wikiscrape.ConnectionFailed, err)
		return
	}
	if x.written == len(x.request) {
		x.state = stateReading
	}
}

func (x *exchange) read(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		x.fail(wikiscrape.ConnectionFailed, err)
		return
	}
	if err := x.conn.SetReadDeadline(x.nextPoll(ctx)); err != nil {
		x.fail(wikiscrape.ConnectionFailed, err)
		return
	}

	n, err := x.conn.Read(x.buf)
	x.response.Write(x.buf[:n])

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		x.state = stateComplete
	case wouldBlock(err):
		if expired(ctx) {
			x.fail(wikiscrape.ConnectionFailed, context.DeadlineExceeded)
		}
	default:
		x.fail(wikiscrape.ConnectionFailed, err)
	}
}

func (x *exchange) nextPoll(ctx context.Context) time.Time {
	next := time.Now().Add(x.poll)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(next) {
		return deadline
	}
	return next
}

func (x *exchange) fail(kind wikiscrape.FetchErrorKind, err error) {
	x.state = stateFailed
	x.err = &wikiscrape.FetchError{
		Kind: kind,
		URL:  x.url,
		Host: x.host,
		Err:  err,
	}
}

// wouldBlock reports an expired deadline: the peer has not sent anything
// yet, which is not a failure.
func wouldBlock(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func expired(ctx context.Context) bool {
	deadline, ok := ctx.Deadline()
	return ok && !time.Now().Before(deadline)
}
