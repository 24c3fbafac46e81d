// Package httptransport assembles the HTTP surface: the shared middleware
// stack, operational endpoints and every module's routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/admin"
	authhandler "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/handler"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/health"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/iplimit"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/metadata"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/request"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type Deps struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	RequestMetrics *request.Metrics
	Metadata       *metadata.Middleware
	LoginLimiter   *iplimit.Limiter
	SubmitLimiter  *iplimit.Limiter

	Health    *health.Handler
	AdminAuth *authhandler.Handler
	Admins    *admin.Handler
	Timeline  *timeline.Handler
	Feedback  *feedback.Handler
	Checklist *checklist.Handler
}

// NewRouter wires the middleware stack and mounts every route.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	if d.Metadata != nil {
		r.Use(d.Metadata.Handler)
	}
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.Logger))
	r.Use(request.LatencyMiddleware(d.RequestMetrics))
	if d.RequestTimeout > 0 {
		r.Use(request.Timeout(d.RequestTimeout))
	}
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", service.HeaderName, "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.Use(request.ContentTypeJSON)
	r.Use(request.BodyLimit(maxBodyBytes))

	if d.Health != nil {
		d.Health.Register(r)
	}
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	d.AdminAuth.Register(r, middlewareOf(d.LoginLimiter))
	d.Admins.Register(r)
	d.Timeline.Register(r)
	d.Feedback.Register(r, middlewareOf(d.SubmitLimiter))
	d.Checklist.Register(r)

	return r
}

func middlewareOf(l *iplimit.Limiter) func(http.Handler) http.Handler {
	if l == nil {
		return nil
	}
	return l.Middleware
}
