package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"
)

func (s *ServiceSuite) TestUpdateLastActivity() {
	ctx := context.Background()

	s.Run("stamps the session with now", func() {
		s.mockSessions.EXPECT().TouchActivity(gomock.Any(), "tok", fixedNow).Return(nil)
		s.service.UpdateLastActivity(ctx, "tok")
	})

	s.Run("errors are swallowed", func() {
		s.mockSessions.EXPECT().TouchActivity(gomock.Any(), "tok", fixedNow).Return(errors.New("db down"))
		s.NotPanics(func() { s.service.UpdateLastActivity(ctx, "tok") })
	})

	s.Run("empty token is ignored", func() {
		s.service.UpdateLastActivity(ctx, "")
	})
}

func (s *ServiceSuite) TestCleanupExpiredSessions() {
	ctx := context.Background()

	s.Run("returns affected count", func() {
		s.mockSessions.EXPECT().InvalidateExpired(gomock.Any(), fixedNow).Return(4, nil)
		s.Equal(4, s.service.CleanupExpiredSessions(ctx))
	})

	s.Run("returns zero on failure", func() {
		s.mockSessions.EXPECT().InvalidateExpired(gomock.Any(), fixedNow).Return(0, errors.New("db down"))
		s.Equal(0, s.service.CleanupExpiredSessions(ctx))
	})
}
