package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
	fixtures "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
)

func (s *ServiceSuite) TestLogin_Success() {
	ctx := context.Background()
	admin := fixtures.NewAdminBuilder().WithEmail("ops@example.com").WithRole(models.RoleManager).Build()

	s.mockThrottle.EXPECT().IsLocked(gomock.Any(), "ops@example.com").Return(false, nil)
	s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), "ops@example.com").Return(admin, nil)
	var created *models.Session
	s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sess *models.Session) error {
			created = sess
			return nil
		})
	s.mockAdmins.EXPECT().RecordLogin(gomock.Any(), admin.ID, fixedNow).Return(nil)
	s.mockThrottle.EXPECT().Reset(gomock.Any(), "ops@example.com").Return(nil)

	res, err := s.service.Login(ctx, LoginInput{
		Email:     "  OPS@example.com ",
		Password:  fixtures.TestPassword,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		ClientIP:  "203.0.113.77",
	})
	s.Require().NoError(err)
	s.Equal("tok-generated", res.Token)
	s.Equal(fixedNow.Add(2*time.Hour), res.ExpiresAt)
	s.Equal(models.DefaultPermissionsFor(models.RoleManager).Strings(), res.Permissions.Strings())

	s.Require().NotNil(created)
	s.Equal(admin.ID, created.AdminID)
	s.Equal("tok-generated", created.Token)
	s.True(created.IsActive)
	s.Equal("203.0.113.0", created.IPAddress)
	s.Contains(created.DeviceLabel, "Firefox")
}

func (s *ServiceSuite) TestLogin_RememberMeUsesLongTTL() {
	admin := fixtures.NewAdminBuilder().WithEmail("ops@example.com").Build()

	s.mockThrottle.EXPECT().IsLocked(gomock.Any(), gomock.Any()).Return(false, nil)
	s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, nil)
	s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockAdmins.EXPECT().RecordLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("ignored"))
	s.mockThrottle.EXPECT().Reset(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.service.Login(context.Background(), LoginInput{
		Email: "ops@example.com", Password: fixtures.TestPassword, RememberMe: true,
	})
	s.Require().NoError(err)
	s.Equal(72*time.Hour, res.TTL)
	s.Equal(fixedNow.Add(72*time.Hour), res.ExpiresAt)
}

func (s *ServiceSuite) TestLogin_Failures() {
	ctx := context.Background()

	s.Run("locked account", func() {
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), "ops@example.com").Return(true, nil)

		_, err := s.service.Login(ctx, LoginInput{Email: "ops@example.com", Password: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeTooManyRequests))
		s.EqualError(err, MsgTooManyAttempts)
	})

	s.Run("unknown email records a failure", func() {
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), "ghost@example.com").Return(false, nil)
		s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, sentinel.ErrNotFound)
		s.mockThrottle.EXPECT().RecordFailure(gomock.Any(), "ghost@example.com").Return(false, nil)

		_, err := s.service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "whatever"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.EqualError(err, MsgInvalidCredentials)
	})

	s.Run("wrong password", func() {
		admin := fixtures.NewAdminBuilder().WithEmail("ops@example.com").Build()
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), "ops@example.com").Return(false, nil)
		s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), "ops@example.com").Return(admin, nil)
		s.mockThrottle.EXPECT().RecordFailure(gomock.Any(), "ops@example.com").Return(true, nil)

		_, err := s.service.Login(ctx, LoginInput{Email: "ops@example.com", Password: "wrong-password"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("inactive admin", func() {
		admin := fixtures.NewAdminBuilder().WithEmail("gone@example.com").Inactive().Build()
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), "gone@example.com").Return(false, nil)
		s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), "gone@example.com").Return(admin, nil)
		s.mockThrottle.EXPECT().RecordFailure(gomock.Any(), "gone@example.com").Return(false, nil)

		_, err := s.service.Login(ctx, LoginInput{Email: "gone@example.com", Password: fixtures.TestPassword})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("missing credentials", func() {
		_, err := s.service.Login(ctx, LoginInput{Email: " "})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("store failure is internal", func() {
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		_, err := s.service.Login(ctx, LoginInput{Email: "ops@example.com", Password: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("throttle outage does not block login", func() {
		admin := fixtures.NewAdminBuilder().WithEmail("ops@example.com").Build()
		s.mockThrottle.EXPECT().IsLocked(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
		s.mockAdmins.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(admin, nil)
		s.mockSessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.mockAdmins.EXPECT().RecordLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.mockThrottle.EXPECT().Reset(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := s.service.Login(ctx, LoginInput{Email: "ops@example.com", Password: fixtures.TestPassword})
		s.NoError(err)
	})
}

func (s *ServiceSuite) TestLogout() {
	ctx := context.Background()

	s.Run("invalidates the token's session", func() {
		s.mockSessions.EXPECT().InvalidateByToken(gomock.Any(), "tok").Return(1, nil)
		s.NoError(s.service.Logout(ctx, "tok"))
	})

	s.Run("empty token is a no-op", func() {
		s.NoError(s.service.Logout(ctx, ""))
	})

	s.Run("store failure surfaces as internal", func() {
		s.mockSessions.EXPECT().InvalidateByToken(gomock.Any(), "tok").Return(0, errors.New("db down"))
		err := s.service.Logout(ctx, "tok")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

