// Package app is the composition root: it picks store backends from config,
// builds the services and returns a ready HTTP handler.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/admin"
	authhandler "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/handler"
	authmetrics "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	adminStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/admin"
	sessionStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/session"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/throttle"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/workers/cleanup"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist"
	checklistStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/store"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback"
	feedbackStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback/store"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/config"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/database"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/health"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	redisclient "github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/redis"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/seeder"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline"
	timelineStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/store"
	httptransport "github.com/glide-ceylon/gidz-uni-path-sub001/internal/transport/http"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/iplimit"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/metadata"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/request"
)

// Feedback submissions share one modest per-IP budget.
const (
	feedbackRate  = 0.2
	feedbackBurst = 3
)

type App struct {
	Handler http.Handler
	Auth    *service.Service
	Cleanup *cleanup.Worker
	Redis   *redisclient.Client

	db     *database.Pool
	logger *slog.Logger
}

type Option func(*options)

type options struct {
	registry *prometheus.Registry
	authOpts []service.Option
}

// WithRegistry registers metrics on reg and serves /metrics from it instead
// of the global registry. In-process test servers need their own.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithAuthOptions forwards extra options to the admin auth service.
func WithAuthOptions(opts ...service.Option) Option {
	return func(o *options) {
		o.authOpts = append(o.authOpts, opts...)
	}
}

type adminBackend interface {
	service.AdminStore
	admin.AdminStore
	seeder.AdminStore
}

type sessionBackend interface {
	service.SessionStore
	admin.SessionStore
}

type checklistBackend interface {
	checklist.Store
	seeder.ChecklistStore
}

type stores struct {
	admins    adminBackend
	sessions  sessionBackend
	timeline  timeline.Store
	feedback  feedback.Store
	checklist checklistBackend
}

func New(ctx context.Context, cfg config.Server, logger *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if o.registry != nil {
		reg, gatherer = o.registry, o.registry
	}

	a := &App{logger: logger}
	healthHandler := health.New(cfg.Environment, logger)

	st, err := a.openStores(ctx, cfg, healthHandler)
	if err != nil {
		return nil, err
	}

	var loginThrottle service.Throttle = throttle.NewInMemory(throttle.Config{
		MaxFailedAttempts: cfg.Login.MaxFailedAttempts,
		Lockout:           cfg.Login.Lockout,
	})
	if cfg.UseRedis() {
		a.Redis, err = redisclient.New(ctx, cfg.Redis.URL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		healthHandler.RegisterCheck("redis", a.Redis.Health)
		loginThrottle = throttle.NewRedis(a.Redis, throttle.Config{
			MaxFailedAttempts: cfg.Login.MaxFailedAttempts,
			Lockout:           cfg.Login.Lockout,
		})
		logger.InfoContext(ctx, "login throttle backed by redis")
	}

	authOpts := append([]service.Option{
		service.WithLogger(logger),
		service.WithMetrics(authmetrics.New(reg)),
		service.WithThrottle(loginThrottle),
		service.WithSessionTTL(cfg.Session.TTL),
		service.WithRememberMeTTL(cfg.Session.RememberMeTTL),
	}, o.authOpts...)
	a.Auth = service.New(st.admins, st.sessions, authOpts...)

	a.Cleanup, err = cleanup.New(a.Auth,
		cleanup.WithSchedule(cfg.Session.CleanupSchedule),
		cleanup.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}

	if err := seed(ctx, cfg, st, logger); err != nil {
		a.Close()
		return nil, err
	}

	proxies, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("parsing trusted proxies: %w", err)
	}

	bizMetrics := metrics.New(reg)
	adminSvc := admin.NewService(st.admins, st.sessions, admin.WithLogger(logger), admin.WithMetrics(bizMetrics))
	timelineSvc := timeline.NewService(st.timeline, timeline.WithLogger(logger), timeline.WithMetrics(bizMetrics))
	feedbackSvc := feedback.NewService(st.feedback, feedback.WithLogger(logger), feedback.WithMetrics(bizMetrics))
	checklistSvc := checklist.NewService(st.checklist, checklist.WithLogger(logger), checklist.WithMetrics(bizMetrics))

	a.Handler = httptransport.NewRouter(httptransport.Deps{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		Gatherer:       gatherer,
		RequestMetrics: request.NewMetrics(reg),
		Metadata:       metadata.NewMiddleware(proxies),
		LoginLimiter:   iplimit.New(cfg.Login.IPRate, cfg.Login.IPBurst, logger),
		SubmitLimiter:  iplimit.New(feedbackRate, feedbackBurst, logger),
		Health:         healthHandler,
		AdminAuth: authhandler.New(a.Auth, logger, authhandler.CookieConfig{
			Secure: cfg.Session.CookieSecure,
			Domain: cfg.Session.CookieDomain,
		}),
		Admins:    admin.New(adminSvc, a.Auth, logger),
		Timeline:  timeline.New(timelineSvc, a.Auth, logger),
		Feedback:  feedback.New(feedbackSvc, a.Auth, logger),
		Checklist: checklist.New(checklistSvc, a.Auth, logger),
	})
	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg config.Server, h *health.Handler) (*stores, error) {
	if !cfg.UsePostgres() {
		a.logger.InfoContext(ctx, "using in-memory stores")
		admins := adminStore.NewInMemory()
		return &stores{
			admins:    admins,
			sessions:  sessionStore.NewInMemory(admins),
			timeline:  timelineStore.NewInMemory(),
			feedback:  feedbackStore.NewInMemory(),
			checklist: checklistStore.NewInMemory(),
		}, nil
	}

	pool, err := database.New(ctx, database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	a.db = pool
	h.RegisterCheck("database", pool.Health)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool.DB()); err != nil {
			a.Close()
			return nil, err
		}
		a.logger.InfoContext(ctx, "database migrations applied")
	}

	db := pool.DB()
	return &stores{
		admins:    adminStore.NewPostgres(db),
		sessions:  sessionStore.NewPostgres(db),
		timeline:  timelineStore.NewPostgres(db),
		feedback:  feedbackStore.NewPostgres(db),
		checklist: checklistStore.NewPostgres(db),
	}, nil
}

func seed(ctx context.Context, cfg config.Server, st *stores, logger *slog.Logger) error {
	s := seeder.New(st.admins, st.checklist, logger)
	if cfg.Seed.AdminEmail != "" {
		if _, err := s.EnsureSuperAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			return fmt.Errorf("seeding super admin: %w", err)
		}
	}
	if cfg.Seed.Demo {
		if cfg.UsePostgres() {
			logger.WarnContext(ctx, "demo seeding skipped for postgres-backed stores")
			return nil
		}
		if err := s.SeedDemo(ctx); err != nil {
			return fmt.Errorf("seeding demo data: %w", err)
		}
	}
	return nil
}

// Close releases the database pool and redis client.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
