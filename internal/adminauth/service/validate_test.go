package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
	fixtures "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
)

func (s *ServiceSuite) TestValidateSession_TokenExtraction() {
	ctx := context.Background()
	admin := fixtures.NewAdminBuilder().Build()

	s.Run("missing token is invalid without a store lookup", func() {
		res := s.service.ValidateSession(ctx, fakeSource{})
		s.False(res.Valid)
		s.Nil(res.Admin)
	})

	s.Run("cookie takes precedence over header", func() {
		src := fakeSource{
			cookies: map[string]string{CookieName: "from-cookie"},
			headers: map[string]string{http.CanonicalHeaderKey(HeaderName): "from-header"},
		}
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "from-cookie").Return(liveSession("from-cookie", admin), nil)

		res := s.service.ValidateSession(ctx, src)
		s.True(res.Valid)
	})

	s.Run("header is used when no cookie is present", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "from-header").Return(liveSession("from-header", admin), nil)

		res := s.service.ValidateSession(ctx, headerSource("from-header"))
		s.True(res.Valid)
	})

	s.Run("empty cookie falls back to header", func() {
		src := fakeSource{
			cookies: map[string]string{CookieName: ""},
			headers: map[string]string{http.CanonicalHeaderKey(HeaderName): "tok-h"},
		}
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-h").Return(liveSession("tok-h", admin), nil)

		s.True(s.service.ValidateSession(ctx, src).Valid)
	})

	s.Run("http request adapter reads the cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-http"})
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-http").Return(liveSession("tok-http", admin), nil)

		s.True(s.service.ValidateSession(ctx, HTTPRequestSource{R: req}).Valid)
	})
}

func (s *ServiceSuite) TestValidateSession_Rejections() {
	ctx := context.Background()

	s.Run("unknown token", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "nope").Return(nil, sentinel.ErrNotFound)
		s.False(s.service.ValidateSession(ctx, cookieSource("nope")).Valid)
	})

	s.Run("store failure collapses to invalid", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(nil, errors.New("connection reset"))
		s.False(s.service.ValidateSession(ctx, cookieSource("tok")).Valid)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.SessionValidations.WithLabelValues(metrics.OutcomeError)))
	})

	s.Run("expired session is invalidated", func() {
		admin := fixtures.NewAdminBuilder().Build()
		found := liveSession("tok-123", admin)
		found.Session.ExpiresAt = fixedNow.Add(-24 * time.Hour)

		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-123").Return(found, nil)
		s.mockSessions.EXPECT().InvalidateSession(gomock.Any(), found.Session.ID).Return(nil)

		s.False(s.service.ValidateSession(ctx, cookieSource("tok-123")).Valid)
	})

	s.Run("failed invalidation still reports invalid", func() {
		admin := fixtures.NewAdminBuilder().Build()
		found := liveSession("tok-exp", admin)
		found.Session.ExpiresAt = fixedNow.Add(-time.Second)

		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-exp").Return(found, nil)
		s.mockSessions.EXPECT().InvalidateSession(gomock.Any(), found.Session.ID).Return(errors.New("db down"))

		s.False(s.service.ValidateSession(ctx, cookieSource("tok-exp")).Valid)
	})

	s.Run("missing admin", func() {
		found := liveSession("tok-orphan", fixtures.NewAdminBuilder().Build())
		found.Admin = nil
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-orphan").Return(found, nil)

		s.False(s.service.ValidateSession(ctx, cookieSource("tok-orphan")).Valid)
	})

	s.Run("deactivated admin with an active session", func() {
		admin := fixtures.NewAdminBuilder().Inactive().Build()
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-deact").Return(liveSession("tok-deact", admin), nil)

		res := s.service.ValidateSession(ctx, cookieSource("tok-deact"))
		s.False(res.Valid)
		s.Nil(res.Permissions)
	})
}

func (s *ServiceSuite) TestValidateSession_ExpiryBoundary() {
	admin := fixtures.NewAdminBuilder().Build()
	found := liveSession("tok-edge", admin)
	found.Session.ExpiresAt = fixedNow

	s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-edge").Return(found, nil)

	s.True(s.service.ValidateSession(context.Background(), cookieSource("tok-edge")).Valid)
}

func (s *ServiceSuite) TestValidateSession_Permissions() {
	ctx := context.Background()

	s.Run("staff without explicit permissions gets role defaults", func() {
		admin := fixtures.NewAdminBuilder().WithRole(models.RoleStaff).Build()
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-staff").Return(liveSession("tok-staff", admin), nil)

		res := s.service.ValidateSession(ctx, cookieSource("tok-staff"))
		s.Require().True(res.Valid)
		s.ElementsMatch([]string{"timeline.read", "can_view_basic_data"}, res.Permissions.Strings())
		s.Equal(admin.ID, res.Admin.ID)
	})

	s.Run("explicit map wins over role", func() {
		admin := fixtures.NewAdminBuilder().
			WithRole(models.RoleSuperAdmin).
			WithPermissions(map[string]bool{"admin.read": true, "timeline.delete": false, "reports.export": true}).
			Build()
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-explicit").Return(liveSession("tok-explicit", admin), nil)

		res := s.service.ValidateSession(ctx, cookieSource("tok-explicit"))
		s.Require().True(res.Valid)
		s.Equal([]string{"admin.read", "reports.export"}, res.Permissions.Strings())
	})

	s.Run("unrecognized role falls back to staff", func() {
		admin := fixtures.NewAdminBuilder().WithRole(models.Role("intern")).Build()
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok-intern").Return(liveSession("tok-intern", admin), nil)

		res := s.service.ValidateSession(ctx, cookieSource("tok-intern"))
		s.Require().True(res.Valid)
		s.Equal(models.DefaultPermissionsFor(models.RoleStaff).Strings(), res.Permissions.Strings())
	})

	s.Run("every known role yields a non-empty set", func() {
		for _, role := range []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleManager, models.RoleStaff, models.RoleFinanceManager} {
			admin := fixtures.NewAdminBuilder().WithRole(role).Build()
			token := "tok-" + string(role)
			s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), token).Return(liveSession(token, admin), nil)

			res := s.service.ValidateSession(ctx, cookieSource(token))
			s.Require().True(res.Valid, role)
			s.NotEmpty(res.Permissions, role)
		}
	})
}
