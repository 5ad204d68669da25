// Package middleware provides optional middleware for via apps: deadlines,
// body limits, panic recovery, request logging, and error rescue.
package middleware

import (
	"context"
	"time"

	"github.com/zacharygolba/via"
)

// Timeout races the downstream chain against d. If the deadline elapses
// first, the request fails with 504 Gateway Timeout and the downstream
// result is discarded; sibling requests are unaffected.
func Timeout[T any](d time.Duration) via.MiddlewareFunc[T] {
	return func(req *via.Request[T], next via.Next[T]) (*via.Response, error) {
		ctx, cancel := context.WithTimeout(req.Context(), d)
		defer cancel()

		type result struct {
			res *via.Response
			err error
		}
		done := make(chan result, 1)

		go func() {
			res, err := next.Call(req.WithContext(ctx))
			done <- result{res, err}
		}()

		select {
		case r := <-done:
			if ctx.Err() == context.DeadlineExceeded {
				return nil, via.GatewayTimeout(ctx.Err())
			}
			return r.res, r.err
		case <-ctx.Done():
			return nil, via.GatewayTimeout(ctx.Err())
		}
	}
}
