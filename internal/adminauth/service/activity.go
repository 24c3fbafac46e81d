package service

import (
	"context"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
)

// UpdateLastActivity stamps the active session carrying token with the
// current time. Failures are logged and swallowed.
func (s *Service) UpdateLastActivity(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.sessions.TouchActivity(ctx, token, s.now()); err != nil {
		s.logger.ErrorContext(ctx, "failed to update session activity", withRequestID(ctx, "error", err)...)
	}
}

// CleanupExpiredSessions marks every active session whose expiry has passed
// as inactive and returns how many changed. It returns 0 on failure.
func (s *Service) CleanupExpiredSessions(ctx context.Context) int {
	n, err := s.sessions.InvalidateExpired(ctx, s.now())
	if err != nil {
		s.metrics.IncCleanupRun(metrics.OutcomeFailure)
		s.logger.ErrorContext(ctx, "expired session cleanup failed", "error", err)
		return 0
	}
	s.metrics.IncCleanupRun(metrics.OutcomeSuccess)
	s.metrics.AddInvalidated(string(models.ReasonCleanup), n)
	if n > 0 {
		s.logger.InfoContext(ctx, "expired sessions invalidated", "count", n)
	}
	return n
}
