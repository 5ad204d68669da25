package via

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Request is the owned bundle of per-request metadata, distinct from the
// streaming body. It is created by the host per request, mutably owned by
// the middleware currently running, and handed onward by next.Call.
type Request[T any] struct {
	id     string
	method string
	url    *url.URL
	proto  string
	header http.Header

	// path keeps the raw request path bytes alive for the lifetime of the
	// request so captured param ranges stay valid slices into it.
	path   string
	params []pathParam

	body    *Body
	taken   bool
	cookies []*http.Cookie

	// setCookies queues cookies to merge into the response jar after the
	// chain returns.
	setCookies []*http.Cookie

	ext   map[any]any
	query *Query

	state *T
	ctx   context.Context
}

type pathParam struct {
	name  string
	start int
	end   int // -1 means to the end of the path
}

// ID returns the UUID assigned to the request by the host adapter.
func (r *Request[T]) ID() string {
	return r.id
}

func (r *Request[T]) Method() string {
	return r.method
}

func (r *Request[T]) URL() *url.URL {
	return r.url
}

// Version returns the protocol version, e.g. "HTTP/1.1".
func (r *Request[T]) Version() string {
	return r.proto
}

func (r *Request[T]) Header() http.Header {
	return r.header
}

// Path returns the raw request path that captured param ranges index.
func (r *Request[T]) Path() string {
	return r.path
}

// State returns the shared application state. The value is shared across
// every request goroutine and must be safe for concurrent use.
func (r *Request[T]) State() *T {
	return r.state
}

func (r *Request[T]) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of the request with its context
// replaced, the way http.Request does.
func (r *Request[T]) WithContext(ctx context.Context) *Request[T] {
	clone := *r
	clone.ctx = ctx
	return &clone
}

// Param looks up a captured path parameter by name. The returned handle
// decodes on demand; see Param.Decode and Param.Require.
func (r *Request[T]) Param(name string) Param {
	for _, p := range r.params {
		if p.name == name {
			return Param{
				name:     name,
				source:   r.path,
				start:    p.start,
				end:      p.end,
				found:    true,
				unescape: unescapePath,
			}
		}
	}
	return Param{name: name, unescape: unescapePath}
}

// Query parses the URI's query string on first access and returns a view
// over its name/value pairs.
func (r *Request[T]) Query() *Query {
	if r.query == nil {
		raw := ""
		if r.url != nil {
			raw = r.url.RawQuery
		}
		q := parseQuery(raw)
		r.query = &q
	}
	return r.query
}

// TakeBody transfers ownership of the body out of the request. The slot is
// one-shot: a second call fails.
func (r *Request[T]) TakeBody() (*Body, error) {
	if r.taken {
		return nil, BadRequest(errors.New("request body has already been taken"))
	}
	r.taken = true
	body := r.body
	r.body = nil
	return body, nil
}

// ReadBody takes the body and collects its frames into one buffer,
// respecting the configured size limit.
func (r *Request[T]) ReadBody() ([]byte, error) {
	body, err := r.TakeBody()
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return body.ReadAll()
}

// LimitBody caps how many bytes reading the body will buffer.
func (r *Request[T]) LimitBody(limit int64) {
	if r.body != nil {
		r.body.SetLimit(limit)
	}
}

// Cookie returns the named request cookie.
func (r *Request[T]) Cookie(name string) (*http.Cookie, error) {
	for _, c := range r.cookies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, http.ErrNoCookie
}

// Cookies returns the cookies parsed from the request.
func (r *Request[T]) Cookies() []*http.Cookie {
	return r.cookies
}

// SetCookie queues a cookie to be merged into the response jar once the
// middleware chain returns.
func (r *Request[T]) SetCookie(cookie *http.Cookie) {
	r.setCookies = append(r.setCookies, cookie)
}

// Set attaches a typed value to the request's extensions map. Callers use
// unexported key types for type identity, the same convention as
// context.WithValue. This is the sanctioned channel for cross-middleware
// communication.
func (r *Request[T]) Set(key, value any) {
	if r.ext == nil {
		r.ext = make(map[any]any)
	}
	r.ext[key] = value
}

// Value reads a typed value from the request's extensions map.
func (r *Request[T]) Value(key any) any {
	return r.ext[key]
}

// ClientIP returns the client's IP address, even if behind a proxy.
func (r *Request[T]) ClientIP() string {
	if ip := r.header.Get(HeaderXForwardedFor); ip != "" {
		for _, candidate := range strings.Split(ip, ",") {
			candidate = strings.TrimSpace(candidate)
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
	}

	if ip := strings.TrimSpace(r.header.Get(HeaderXRealIP)); ip != "" {
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	remote := ""
	if addr, ok := r.Value(remoteAddrKey{}).(string); ok {
		remote = addr
	}
	if host, _, err := net.SplitHostPort(strings.TrimSpace(remote)); err == nil {
		return host
	}
	return remote
}

type remoteAddrKey struct{}
