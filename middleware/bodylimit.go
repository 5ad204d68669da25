package middleware

import "github.com/zacharygolba/via"

// Common size constants for convenience
const (
	B  int64 = 1
	KB       = 1024 * B
	MB       = 1024 * KB
)

// BodyLimit caps how many bytes reading the request body may buffer.
// A body that exceeds the limit fails with 413 Payload Too Large when a
// downstream middleware reads it.
func BodyLimit[T any](max int64) via.MiddlewareFunc[T] {
	return func(req *via.Request[T], next via.Next[T]) (*via.Response, error) {
		req.LimitBody(max)
		return next.Call(req)
	}
}
