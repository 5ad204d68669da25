package middleware

import (
	"github.com/pkg/errors"

	"github.com/zacharygolba/via"
)

// Rescue intercepts errors bubbling up from downstream middleware and
// hands them to f, which may convert the error to a response or map it to
// another error. Errors that are not *via.Error arrive wrapped with a 500
// status. Successful responses pass through untouched.
func Rescue[T any](f func(*via.Error) (*via.Response, error)) via.MiddlewareFunc[T] {
	return func(req *via.Request[T], next via.Next[T]) (*via.Response, error) {
		res, err := next.Call(req)
		if err == nil {
			return res, nil
		}

		var e *via.Error
		if !errors.As(err, &e) {
			e = via.New(err)
		}
		return f(e)
	}
}
