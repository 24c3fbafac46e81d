// Package iplimit provides a per-client-IP token bucket for sensitive routes.
package iplimit

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/httputil"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/privacy"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

// maxTrackedIPs resets the cache when exceeded so memory stays bounded.
const maxTrackedIPs = 10000

// Limiter hands out one rate.Limiter per client IP.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	logger   *slog.Logger
}

func New(rps float64, burst int, logger *slog.Logger) *Limiter {
	if rps <= 0 {
		rps = 0.5
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		logger:   logger,
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= maxTrackedIPs {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Middleware rejects callers that exhausted their bucket with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = r.RemoteAddr
		}
		if !l.Allow(ip) {
			if l.logger != nil {
				l.logger.WarnContext(ctx, "rate limit exceeded",
					"path", r.URL.Path,
					"ip_prefix", privacy.AnonymizeIP(ip),
					"request_id", requestcontext.RequestID(ctx),
				)
			}
			w.Header().Set("Retry-After", "2")
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorBody{Error: "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
