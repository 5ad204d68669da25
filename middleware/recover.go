package middleware

import (
	"runtime/debug"

	"github.com/pkg/errors"

	"github.com/zacharygolba/via"
)

// Recover catches panics from downstream middleware and converts them to
// 500 errors. The core itself does not promise panic safety; apps that
// need resilience run their chains inside this wrapper.
func Recover[T any]() via.MiddlewareFunc[T] {
	return func(req *via.Request[T], next via.Next[T]) (res *via.Response, err error) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			cause, ok := recovered.(error)
			if !ok {
				cause = errors.Errorf("%v", recovered)
			}

			if logger := via.GetLogger(); logger != nil {
				logger.Error().
					Err(cause).
					Str("method", req.Method()).
					Str("path", req.Path()).
					Str("request_id", req.ID()).
					Str("stack_trace", string(debug.Stack())).
					Msg("[via-panic] Panic recovered")
			}

			res = nil
			err = via.InternalServerError(cause)
		}()

		return next.Call(req)
	}
}
