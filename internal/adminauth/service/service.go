// Package service implements admin session validation, the permission guard,
// and the login/logout flow that issues sessions.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AdminStore,SessionStore,Throttle

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/throttle"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

// AdminStore is the subset of admin persistence the auth flow needs.
// Error contract: FindByEmail returns sentinel.ErrNotFound when absent.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	RecordLogin(ctx context.Context, adminID id.AdminID, at time.Time) error
}

// SessionStore persists admin sessions.
// Error contract: FindActiveByToken returns sentinel.ErrNotFound when no
// active session carries the token. Invalidations are idempotent.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindActiveByToken(ctx context.Context, token string) (*models.SessionWithAdmin, error)
	InvalidateSession(ctx context.Context, sessionID id.SessionID) error
	InvalidateByToken(ctx context.Context, token string) (int, error)
	TouchActivity(ctx context.Context, token string, at time.Time) error
	InvalidateExpired(ctx context.Context, now time.Time) (int, error)
}

// Throttle counts failed logins per email.
type Throttle interface {
	IsLocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

const (
	defaultSessionTTL    = 24 * time.Hour
	defaultRememberMeTTL = 30 * 24 * time.Hour
)

type Service struct {
	admins        AdminStore
	sessions      SessionStore
	throttle      Throttle
	sessionTTL    time.Duration
	rememberMeTTL time.Duration
	now           func() time.Time
	newToken      func() (string, error)
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock overrides time.Now; intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithThrottle(t Throttle) Option {
	return func(s *Service) {
		s.throttle = t
	}
}

// WithSessionTTL sets the lifetime of a normal session. Non-positive values are ignored.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithRememberMeTTL sets the lifetime used when the admin asks to be remembered.
func WithRememberMeTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.rememberMeTTL = ttl
		}
	}
}

// WithTokenGenerator replaces the random session token source.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		s.newToken = gen
	}
}

func New(admins AdminStore, sessions SessionStore, opts ...Option) *Service {
	svc := &Service{
		admins:        admins,
		sessions:      sessions,
		sessionTTL:    defaultSessionTTL,
		rememberMeTTL: defaultRememberMeTTL,
		now:           time.Now,
		newToken:      generateToken,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("visa-admin/adminauth")
	}
	if svc.throttle == nil {
		svc.throttle = throttle.NewInMemory(throttle.Config{})
	}
	if svc.rememberMeTTL < svc.sessionTTL {
		svc.rememberMeTTL = svc.sessionTTL
	}
	return svc
}
