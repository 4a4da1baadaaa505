package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/ssrkit/internal"
)

// DefaultTimeout is used when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. The handler runs on the
// request goroutine; everything that honours the context, including a
// streamed render, stops at the deadline. When the handler fails because the
// deadline passed, a *TimeoutError is returned instead.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", timeout.String())
				return &TimeoutError{Duration: timeout, Err: err}
			}
			return err
		}
	}
}
