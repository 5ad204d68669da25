package middleware

import (
	"time"

	"github.com/zacharygolba/via"
)

// RequestLog writes one structured log event per request with the method,
// path, status, and elapsed time once the downstream chain returns.
func RequestLog[T any]() via.MiddlewareFunc[T] {
	return func(req *via.Request[T], next via.Next[T]) (*via.Response, error) {
		start := time.Now()
		res, err := next.Call(req)

		logger := via.GetLogger()
		if logger == nil {
			return res, err
		}

		event := logger.Info()
		status := 0
		switch {
		case err != nil:
			event = logger.Error().Err(err)
			if e, ok := err.(*via.Error); ok {
				status = e.Status()
			}
		case res != nil:
			status = res.Status()
		}

		event.
			Str("method", req.Method()).
			Str("path", req.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Str("request_id", req.ID()).
			Msg("[via] request")

		return res, err
	}
}
