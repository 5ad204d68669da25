// Package via is an HTTP framework built around a path router with
// ordered multi-branch matching and a middleware pipeline composed per
// request from the matched nodes.
package via

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/zacharygolba/via/router"
)

// App owns the route tree and the shared application state. Routes are
// registered in a build phase at process start; afterwards the tree is
// read-only and shared by every request goroutine.
type App[T any] struct {
	state  T
	router *router.Router[route[T]]
}

// Route is a registration cursor over one node of the tree.
type Route[T any] struct {
	app   *App[T]
	inner router.Route[route[T]]
}

// route is the payload attached to a tree node: the middleware entries
// appended to it, in definition order, each tagged partial or final.
type route[T any] struct {
	entries []entry[T]
}

type entry[T any] struct {
	final      bool
	middleware Middleware[T]
}

// NewApp returns an app with the given shared state. The state is handed
// to every request and must be safe for concurrent use.
func NewApp[T any](state T) *App[T] {
	return &App[T]{
		state:  state,
		router: router.New[route[T]](),
	}
}

// At walks the tree from the root along path, extending it as needed, and
// returns a cursor for attaching middleware.
func (a *App[T]) At(path string) *Route[T] {
	return &Route[T]{app: a, inner: a.router.At(path)}
}

// State returns the shared application state.
func (a *App[T]) State() *T {
	return &a.state
}

// At continues registration relative to this route.
func (r *Route[T]) At(path string) *Route[T] {
	return &Route[T]{app: r.app, inner: r.inner.At(path)}
}

// Scope runs f with this route so nested registration reads as a block.
func (r *Route[T]) Scope(f func(*Route[T])) *Route[T] {
	f(r)
	return r
}

// Param returns the capture name of the route's node, if it has one.
func (r *Route[T]) Param() (string, bool) {
	return r.inner.Param()
}

// Include appends middleware that runs whenever the node lies on the
// matched path, whether or not it is the terminus.
func (r *Route[T]) Include(m Middleware[T]) *Route[T] {
	return r.append(entry[T]{middleware: m})
}

// Respond appends middleware that runs only when the node is the exact
// terminus of the matched path, or when the node is a wildcard, which is
// always terminal.
func (r *Route[T]) Respond(m Middleware[T]) *Route[T] {
	return r.append(entry[T]{final: true, middleware: m})
}

func (r *Route[T]) append(e entry[T]) *Route[T] {
	value := r.inner.GetOrInsertWith(func() route[T] { return route[T]{} })
	value.entries = append(value.entries, e)
	return r
}

// visit matches path against the tree and flattens the result into the
// middleware chain and captured params for one request. Entries keep
// traversal order: ancestors before descendants, siblings in definition
// order, and partial entries of a node before its final entries only when
// the definition interleaved them that way.
func (a *App[T]) visit(path string) (Next[T], []pathParam) {
	var stack []Middleware[T]
	var params []pathParam

	for _, found := range a.router.Visit(path) {
		if found.Param != "" {
			params = append(params, pathParam{
				name:  found.Param,
				start: found.Start,
				end:   found.End,
			})
		}
		if found.Route == nil {
			continue
		}
		for _, e := range found.Route.entries {
			if !e.final || found.Exact {
				stack = append(stack, e.middleware)
			}
		}
	}

	return Next[T]{stack: stack}, params
}

// NewRequest adapts a parsed request head and body from the host into the
// envelope the middleware chain consumes.
func (a *App[T]) NewRequest(r *http.Request) *Request[T] {
	req := &Request[T]{
		id:      uuid.NewString(),
		method:  r.Method,
		url:     r.URL,
		proto:   r.Proto,
		header:  r.Header,
		path:    r.URL.EscapedPath(),
		body:    newBody(r.Body, func() http.Header { return r.Trailer }, maxBodySize),
		cookies: r.Cookies(),
		state:   &a.state,
		ctx:     r.Context(),
	}
	if r.RemoteAddr != "" {
		req.Set(remoteAddrKey{}, r.RemoteAddr)
	}
	return req
}

// Handle runs one request through the middleware chain assembled from the
// route tree and always produces a response: any error the chain returns
// is converted using its status and render mode. Request cookies queued
// with SetCookie are merged into the response jar after the chain
// returns.
func (a *App[T]) Handle(req *Request[T]) *Response {
	next, params := a.visit(req.path)
	req.params = params

	res, err := next.Call(req)
	if err != nil {
		if logger != nil {
			logger.Debug().
				Err(err).
				Str("method", req.method).
				Str("path", req.path).
				Str("request_id", req.id).
				Msg("[via] request chain returned an error")
		}
		res = errorResponse(err)
	}
	if res == nil {
		res = errorResponse(Raise(http.StatusInternalServerError, ""))
	}

	for _, cookie := range req.setCookies {
		res.AddCookie(cookie)
	}
	return res
}

// ServeHTTP implements the http.Handler interface, letting net/http play
// the host role: it parses the wire, we route and respond.
func (a *App[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := a.Handle(a.NewRequest(r))
	if err := res.Write(w); err != nil && logger != nil {
		logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("[via] failed to write response")
	}
}
