package via

import (
	"net/http"
	"strings"
)

// Allow dispatches a request to a middleware selected by HTTP method.
// When no entry matches it delegates to the next middleware by default;
// OrNotAllowed and OrElse replace that fallback with a deny policy.
//
//	route.Respond(via.Get[State](list).Post(create).OrNotAllowed())
type Allow[T any] struct {
	allowed []allowEntry[T]
	orElse  func(method, allowed string) (*Response, error)
}

type allowEntry[T any] struct {
	method     string
	middleware Middleware[T]
}

func allow[T any](method string, middleware Middleware[T]) *Allow[T] {
	return &Allow[T]{allowed: []allowEntry[T]{{method: method, middleware: middleware}}}
}

// Route CONNECT requests to the provided middleware.
func Connect[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodConnect, middleware)
}

// Route DELETE requests to the provided middleware.
func Delete[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodDelete, middleware)
}

// Route GET requests to the provided middleware.
func Get[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodGet, middleware)
}

// Route HEAD requests to the provided middleware.
func Head[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodHead, middleware)
}

// Route OPTIONS requests to the provided middleware.
func Options[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodOptions, middleware)
}

// Route PATCH requests to the provided middleware.
func Patch[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodPatch, middleware)
}

// Route POST requests to the provided middleware.
func Post[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodPost, middleware)
}

// Route PUT requests to the provided middleware.
func Put[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodPut, middleware)
}

// Route TRACE requests to the provided middleware.
func Trace[T any](middleware Middleware[T]) *Allow[T] {
	return allow(http.MethodTrace, middleware)
}

func (a *Allow[T]) add(method string, middleware Middleware[T]) *Allow[T] {
	a.allowed = append(a.allowed, allowEntry[T]{method: method, middleware: middleware})
	return a
}

func (a *Allow[T]) Connect(m Middleware[T]) *Allow[T] { return a.add(http.MethodConnect, m) }
func (a *Allow[T]) Delete(m Middleware[T]) *Allow[T]  { return a.add(http.MethodDelete, m) }
func (a *Allow[T]) Get(m Middleware[T]) *Allow[T]     { return a.add(http.MethodGet, m) }
func (a *Allow[T]) Head(m Middleware[T]) *Allow[T]    { return a.add(http.MethodHead, m) }
func (a *Allow[T]) Options(m Middleware[T]) *Allow[T] { return a.add(http.MethodOptions, m) }
func (a *Allow[T]) Patch(m Middleware[T]) *Allow[T]   { return a.add(http.MethodPatch, m) }
func (a *Allow[T]) Post(m Middleware[T]) *Allow[T]    { return a.add(http.MethodPost, m) }
func (a *Allow[T]) Put(m Middleware[T]) *Allow[T]     { return a.add(http.MethodPut, m) }
func (a *Allow[T]) Trace(m Middleware[T]) *Allow[T]   { return a.add(http.MethodTrace, m) }

// OrElse calls the provided function to produce a response when the
// request method has no entry. The function receives the request method
// and the value for the Allow header.
func (a *Allow[T]) OrElse(f func(method, allowed string) (*Response, error)) *Allow[T] {
	a.orElse = f
	return a
}

// OrNotAllowed denies requests whose method has no entry with a
// 405 Method Not Allowed response carrying the Allow header.
func (a *Allow[T]) OrNotAllowed() *Allow[T] {
	return a.OrElse(func(method, allowed string) (*Response, error) {
		return Build().
			Status(http.StatusMethodNotAllowed).
			Header(HeaderAllow, allowed).
			Text("Method not allowed: " + method + "."), nil
	})
}

func (a *Allow[T]) allowHeader() string {
	methods := make([]string, len(a.allowed))
	for i, entry := range a.allowed {
		methods[i] = entry.method
	}
	return strings.Join(methods, ", ")
}

func (a *Allow[T]) respondTo(method string) Middleware[T] {
	for _, entry := range a.allowed {
		if entry.method == method {
			return entry.middleware
		}
	}
	return nil
}

func (a *Allow[T]) Call(req *Request[T], next Next[T]) (*Response, error) {
	if middleware := a.respondTo(req.Method()); middleware != nil {
		return middleware.Call(req, next)
	}
	if a.orElse != nil {
		return a.orElse(req.Method(), a.allowHeader())
	}
	return next.Call(req)
}
