package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

const (
	// CookieName carries the session token for browser clients.
	CookieName = "admin_session"
	// HeaderName is the fallback for clients that cannot send cookies.
	HeaderName = "x-session-token"
)

// TokenSource exposes the parts of an inbound request that may carry a
// session token.
type TokenSource interface {
	Cookie(name string) (string, bool)
	Header(name string) string
}

// HTTPRequestSource adapts *http.Request to TokenSource.
type HTTPRequestSource struct {
	R *http.Request
}

func (s HTTPRequestSource) Cookie(name string) (string, bool) {
	c, err := s.R.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s HTTPRequestSource) Header(name string) string {
	return s.R.Header.Get(name)
}

// ExtractToken returns the cookie token if present and non-empty, otherwise
// the header token.
func ExtractToken(src TokenSource) string {
	if src == nil {
		return ""
	}
	if v, ok := src.Cookie(CookieName); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(src.Header(HeaderName))
}

// ValidationResult is the outcome of ValidateSession. Admin and Permissions
// are set only when Valid is true.
type ValidationResult struct {
	Valid       bool
	Admin       *models.Admin
	Permissions models.PermissionSet
	Session     *models.Session
}

// ValidateSession resolves the token carried by src into a live admin and
// its effective permissions. Every failure, including store errors, yields
// an invalid result.
func (s *Service) ValidateSession(ctx context.Context, src TokenSource) ValidationResult {
	ctx, span := s.tracer.Start(ctx, "adminauth.ValidateSession")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveValidation(time.Since(start).Seconds()) }()

	token := ExtractToken(src)
	if token == "" {
		return s.invalid(ctx, "missing_token")
	}

	found, err := s.sessions.FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.invalid(ctx, "unknown_token")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "session lookup failed")
		s.logger.ErrorContext(ctx, "session lookup failed", withRequestID(ctx, "error", err)...)
		s.metrics.IncValidation(metrics.OutcomeError)
		return ValidationResult{}
	}

	sess := found.Session
	now := s.now()
	if sess.IsExpired(now) {
		if err := s.sessions.InvalidateSession(ctx, sess.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to invalidate expired session",
				withRequestID(ctx, "session_id", sess.ID.String(), "error", err)...)
		} else {
			s.metrics.AddInvalidated(string(models.ReasonExpired), 1)
		}
		return s.invalid(ctx, "expired", "session_id", sess.ID.String())
	}

	admin := found.Admin
	if admin == nil {
		return s.invalid(ctx, "admin_missing", "session_id", sess.ID.String())
	}
	if !admin.IsActive {
		return s.invalid(ctx, "admin_inactive", "admin_id", admin.ID.String())
	}

	perms := models.ResolvePermissions(admin)
	span.SetAttributes(
		attribute.String("admin.id", admin.ID.String()),
		attribute.String("admin.role", string(admin.Role)),
		attribute.Int("admin.permissions", len(perms)),
	)
	s.metrics.IncValidation(metrics.OutcomeValid)
	return ValidationResult{
		Valid:       true,
		Admin:       admin,
		Permissions: perms,
		Session:     &sess,
	}
}

func (s *Service) invalid(ctx context.Context, reason string, attrs ...any) ValidationResult {
	s.metrics.IncValidation(metrics.OutcomeInvalid)
	s.logger.WarnContext(ctx, "admin session rejected", withRequestID(ctx, append(attrs, "reason", reason)...)...)
	return ValidationResult{}
}
