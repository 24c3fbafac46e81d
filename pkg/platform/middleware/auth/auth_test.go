package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
)

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) Authorize(ctx context.Context, src service.TokenSource, required ...models.Permission) service.Decision {
	args := m.Called(ctx, src, required)
	return args.Get(0).(service.Decision)
}

func (m *MockGuard) UpdateLastActivity(ctx context.Context, token string) {
	m.Called(ctx, token)
}

type RequirePermissionSuite struct {
	suite.Suite
	guard  *MockGuard
	logger *slog.Logger
}

func (s *RequirePermissionSuite) SetupTest() {
	s.guard = new(MockGuard)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequirePermissionSuite(t *testing.T) {
	suite.Run(t, new(RequirePermissionSuite))
}

func (s *RequirePermissionSuite) serve(req *http.Request, required ...models.Permission) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusNoContent)
	})
	rec := httptest.NewRecorder()
	RequirePermission(s.guard, s.logger, required...)(next).ServeHTTP(rec, req)
	return rec, seen
}

func (s *RequirePermissionSuite) TestUnauthorizedWritesGuardBody() {
	s.guard.On("Authorize", mock.Anything, mock.Anything, []models.Permission{models.PermAdminRead}).
		Return(service.Decision{Status: http.StatusUnauthorized, Body: service.UnauthorizedBody{Error: service.MsgUnauthorized}})

	rec, seen := s.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admins", nil), models.PermAdminRead)

	s.Nil(seen)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":"Unauthorized: Invalid or expired session"}`, rec.Body.String())
	s.guard.AssertNotCalled(s.T(), "UpdateLastActivity", mock.Anything, mock.Anything)
}

func (s *RequirePermissionSuite) TestForbiddenWritesRequiredAndCurrent() {
	s.guard.On("Authorize", mock.Anything, mock.Anything, mock.Anything).Return(service.Decision{
		Status: http.StatusForbidden,
		Body: service.ForbiddenBody{
			Error:    service.MsgForbidden,
			Required: []string{"admin.delete"},
			Current:  []string{"can_view_basic_data", "timeline.read"},
		},
	})

	rec, seen := s.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/admins/x", nil), models.PermAdminDelete)

	s.Nil(seen)
	s.Equal(http.StatusForbidden, rec.Code)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Forbidden: Insufficient permissions", body["error"])
	s.Equal([]any{"admin.delete"}, body["required"])
	s.Equal([]any{"can_view_basic_data", "timeline.read"}, body["current"])
}

func (s *RequirePermissionSuite) TestAuthorizedStoresAdminAndTouchesActivity() {
	admin := testutil.NewAdminBuilder().Build()
	perms := models.DefaultPermissionsFor(admin.Role)
	s.guard.On("Authorize", mock.Anything, mock.Anything, mock.Anything).
		Return(service.Decision{Authorized: true, Status: http.StatusOK, Admin: admin, Permissions: perms})
	s.guard.On("UpdateLastActivity", mock.Anything, "tok-abc").Return()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/timeline-events", nil)
	req.Header.Set(service.HeaderName, "tok-abc")
	rec, seen := s.serve(req, models.PermTimelineRead)

	s.Equal(http.StatusNoContent, rec.Code)
	s.Require().NotNil(seen)
	s.Equal(admin.ID, AdminFromContext(seen.Context()).ID)
	s.Equal(perms.Strings(), PermissionsFromContext(seen.Context()).Strings())
	s.Equal("tok-abc", SessionTokenFromContext(seen.Context()))
	s.guard.AssertExpectations(s.T())
}

func (s *RequirePermissionSuite) TestEmptyContext() {
	ctx := context.Background()
	s.Nil(AdminFromContext(ctx))
	s.Nil(PermissionsFromContext(ctx))
	s.Empty(SessionTokenFromContext(ctx))
}
