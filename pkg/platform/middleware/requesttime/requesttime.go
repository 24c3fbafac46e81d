// Package requesttime pins a single "now" per request so that every
// timestamp written while serving it agrees.
package requesttime

import (
	"context"
	"net/http"
	"time"
)

type ctxKey struct{}

// Middleware records the arrival time (UTC) in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithTime(r.Context(), time.Now().UTC())))
	})
}

// Now returns the pinned request time, or the wall clock outside a request.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxKey{}).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

// WithTime pins t as the request time. Services' tests use it to fix timestamps.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}
