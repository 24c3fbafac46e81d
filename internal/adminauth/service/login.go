package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/device"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/privacy"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgTooManyAttempts    = "Too many failed login attempts"

	tokenBytes = 32
)

// dummyHash keeps the response time of unknown emails close to that of a
// wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// LoginInput carries credentials plus the client metadata recorded on the session.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
	UserAgent  string
	ClientIP   string
}

type LoginResult struct {
	Admin       *models.Admin
	Permissions models.PermissionSet
	Token       string
	ExpiresAt   time.Time
	TTL         time.Duration
}

// Login checks credentials and opens a new session. Unknown emails,
// inactive admins and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := models.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email and password are required")
	}

	locked, err := s.throttle.IsLocked(ctx, email)
	if err != nil {
		// Throttle backend outages must not lock every admin out.
		s.logger.ErrorContext(ctx, "login throttle check failed", withRequestID(ctx, "error", err)...)
	}
	if locked {
		s.metrics.IncLogin(metrics.OutcomeLocked)
		s.logger.WarnContext(ctx, "login rejected: account locked", withRequestID(ctx, "email", email)...)
		return nil, dErrors.New(dErrors.CodeTooManyRequests, MsgTooManyAttempts)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, s.loginFailed(ctx, email, "unknown_email")
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, s.loginFailed(ctx, email, "wrong_password")
	}
	if !admin.IsActive {
		return nil, s.loginFailed(ctx, email, "admin_inactive")
	}

	token, err := s.newToken()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate session token")
	}
	now := s.now()
	ttl := s.sessionTTL
	if in.RememberMe {
		ttl = s.rememberMeTTL
	}
	sess := &models.Session{
		ID:           id.NewSessionID(),
		AdminID:      admin.ID,
		Token:        token,
		ExpiresAt:    now.Add(ttl),
		IsActive:     true,
		LastActivity: now,
		CreatedAt:    now,
		UserAgent:    in.UserAgent,
		DeviceLabel:  device.Label(in.UserAgent),
		IPAddress:    privacy.AnonymizeIP(in.ClientIP),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	if err := s.admins.RecordLogin(ctx, admin.ID, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to record last login", withRequestID(ctx, "admin_id", admin.ID.String(), "error", err)...)
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.ErrorContext(ctx, "failed to reset login throttle", withRequestID(ctx, "error", err)...)
	}

	s.metrics.IncLogin(metrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "admin logged in", withRequestID(ctx,
		"admin_id", admin.ID.String(),
		"session_id", sess.ID.String(),
		"device", sess.DeviceLabel,
	)...)
	return &LoginResult{
		Admin:       admin,
		Permissions: models.ResolvePermissions(admin),
		Token:       token,
		ExpiresAt:   sess.ExpiresAt,
		TTL:         ttl,
	}, nil
}

func (s *Service) loginFailed(ctx context.Context, email, reason string) error {
	s.metrics.IncLogin(metrics.OutcomeFailure)
	nowLocked, err := s.throttle.RecordFailure(ctx, email)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record login failure", withRequestID(ctx, "error", err)...)
	}
	s.logger.WarnContext(ctx, "login failed", withRequestID(ctx, "email", email, "reason", reason, "locked", nowLocked)...)
	return dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
}

// Logout invalidates whichever active session carries token. An unknown or
// empty token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	n, err := s.sessions.InvalidateByToken(ctx, token)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to invalidate session")
	}
	s.metrics.AddInvalidated(string(models.ReasonLogout), n)
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
