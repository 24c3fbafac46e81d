package service

import (
	"context"
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
	fixtures "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
)

func (s *ServiceSuite) TestAuthorize() {
	ctx := context.Background()
	staff := fixtures.NewAdminBuilder().WithRole(models.RoleStaff).Build()

	s.Run("invalid session yields 401 payload", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "bad").Return(nil, sentinel.ErrNotFound)

		d := s.service.Authorize(ctx, cookieSource("bad"), models.PermTimelineRead)
		s.False(d.Authorized)
		s.Equal(http.StatusUnauthorized, d.Status)
		s.Equal(UnauthorizedBody{Error: "Unauthorized: Invalid or expired session"}, d.Body)
	})

	s.Run("no required permissions admits any valid session", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(liveSession("tok", staff), nil)

		d := s.service.Authorize(ctx, cookieSource("tok"))
		s.True(d.Authorized)
		s.Nil(d.Body)
		s.Equal(staff.ID, d.Admin.ID)
	})

	s.Run("missing permission yields 403 with required and current", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(liveSession("tok", staff), nil)

		d := s.service.Authorize(ctx, cookieSource("tok"), models.PermAdminDelete)
		s.False(d.Authorized)
		s.Equal(http.StatusForbidden, d.Status)
		body, ok := d.Body.(ForbiddenBody)
		s.Require().True(ok)
		s.Equal("Forbidden: Insufficient permissions", body.Error)
		s.Equal([]string{"admin.delete"}, body.Required)
		s.Equal([]string{"can_view_basic_data", "timeline.read"}, body.Current)
	})

	// Any one of the listed permissions suffices.
	s.Run("required permissions are OR-ed", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(liveSession("tok", staff), nil)

		d := s.service.Authorize(ctx, cookieSource("tok"), models.PermAdminDelete, models.PermTimelineRead)
		s.True(d.Authorized)
	})

	s.Run("explicit permissions are used for the check", func() {
		custom := fixtures.NewAdminBuilder().
			WithRole(models.RoleStaff).
			WithPermissions(map[string]bool{"admin.delete": true}).
			Build()
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(liveSession("tok", custom), nil)

		d := s.service.Authorize(ctx, cookieSource("tok"), models.PermAdminDelete)
		s.True(d.Authorized)
		s.Equal([]string{"admin.delete"}, d.Permissions.Strings())
	})

	s.Run("authorize does not touch last activity", func() {
		s.mockSessions.EXPECT().FindActiveByToken(gomock.Any(), "tok").Return(liveSession("tok", staff), nil)
		s.mockSessions.EXPECT().TouchActivity(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		s.True(s.service.Authorize(ctx, cookieSource("tok")).Authorized)
	})
}
