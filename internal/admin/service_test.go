package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	adminStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/admin"
	sessionStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/session"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	admins   *adminStore.InMemoryStore
	sessions *sessionStore.InMemoryStore
	service  *Service
	actor    *models.Admin
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requesttime.WithTime(context.Background(), time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	s.admins = adminStore.NewInMemory()
	s.sessions = sessionStore.NewInMemory(s.admins)
	s.service = NewService(s.admins, s.sessions,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithHashCost(bcrypt.MinCost),
	)
	s.actor = testutil.NewAdminBuilder().WithRole(models.RoleSuperAdmin).Build()
	s.Require().NoError(s.admins.Create(s.ctx, s.actor))
}

func (s *ServiceSuite) createInput() CreateInput {
	return CreateInput{
		Email:     "New.Hire@Example.com",
		Password:  "long-enough-pw",
		FirstName: "New",
		LastName:  "Hire",
		Role:      "staff",
	}
}

func (s *ServiceSuite) TestCreate() {
	s.Run("hashes password and normalizes email", func() {
		a, err := s.service.Create(s.ctx, s.createInput())
		s.Require().NoError(err)
		s.Equal("new.hire@example.com", a.Email)
		s.True(a.IsActive)
		s.Equal(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), a.CreatedAt)
		s.NoError(bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("long-enough-pw")))
	})

	s.Run("duplicate email conflicts", func() {
		_, err := s.service.Create(s.ctx, s.createInput())
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown role", func() {
		in := s.createInput()
		in.Email = "other@example.com"
		in.Role = "intern"
		_, err := s.service.Create(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown permission name", func() {
		in := s.createInput()
		in.Email = "other@example.com"
		in.Permissions = map[string]bool{"timeline.read": true, "launch.missiles": true}
		_, err := s.service.Create(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestGet() {
	_, err := s.service.Get(s.ctx, "not-a-uuid")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.Get(s.ctx, id.NewAdminID().String())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	a, err := s.service.Get(s.ctx, s.actor.ID.String())
	s.Require().NoError(err)
	s.Equal(s.actor.Email, a.Email)
}

func (s *ServiceSuite) TestList_Filters() {
	staff, err := s.service.Create(s.ctx, s.createInput())
	s.Require().NoError(err)

	all, err := s.service.List(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Len(all, 2)

	onlyStaff, err := s.service.List(s.ctx, ListFilter{Role: "staff"})
	s.Require().NoError(err)
	s.Require().Len(onlyStaff, 1)
	s.Equal(staff.ID, onlyStaff[0].ID)

	inactive := false
	none, err := s.service.List(s.ctx, ListFilter{IsActive: &inactive})
	s.Require().NoError(err)
	s.Empty(none)

	_, err = s.service.List(s.ctx, ListFilter{Role: "intern"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestUpdate_DeactivationEndsSessions() {
	target := testutil.NewAdminBuilder().Build()
	s.Require().NoError(s.admins.Create(s.ctx, target))
	sess := testutil.NewSessionBuilder().ForAdmin(target.ID).Build()
	s.Require().NoError(s.sessions.Create(s.ctx, sess))

	off := false
	role := "manager"
	updated, err := s.service.Update(s.ctx, s.actor.ID, target.ID.String(), UpdateInput{IsActive: &off, Role: &role})
	s.Require().NoError(err)
	s.False(updated.IsActive)
	s.Equal(models.RoleManager, updated.Role)

	stored, err := s.sessions.FindByID(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.False(stored.IsActive)
}

func (s *ServiceSuite) TestUpdate_Rules() {
	off := false
	_, err := s.service.Update(s.ctx, s.actor.ID, s.actor.ID.String(), UpdateInput{IsActive: &off})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	perms := map[string]bool{"bogus": true}
	_, err = s.service.Update(s.ctx, s.actor.ID, s.actor.ID.String(), UpdateInput{Permissions: &perms})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Update(s.ctx, s.actor.ID, id.NewAdminID().String(), UpdateInput{})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	empty := " "
	a, err := s.service.Update(s.ctx, s.actor.ID, s.actor.ID.String(), UpdateInput{Department: &empty})
	s.Require().NoError(err)
	s.Nil(a.Department)
}

func (s *ServiceSuite) TestDeactivate() {
	target := testutil.NewAdminBuilder().Build()
	s.Require().NoError(s.admins.Create(s.ctx, target))
	s.Require().NoError(s.sessions.Create(s.ctx, testutil.NewSessionBuilder().ForAdmin(target.ID).Build()))

	s.Require().NoError(s.service.Deactivate(s.ctx, s.actor.ID, target.ID.String()))

	stored, err := s.admins.FindByID(s.ctx, target.ID)
	s.Require().NoError(err)
	s.False(stored.IsActive)

	n, err := s.sessions.CountActive(s.ctx, time.Now())
	s.Require().NoError(err)
	s.Zero(n)

	s.Run("idempotent", func() {
		s.NoError(s.service.Deactivate(s.ctx, s.actor.ID, target.ID.String()))
	})

	s.Run("self", func() {
		err := s.service.Deactivate(s.ctx, s.actor.ID, s.actor.ID.String())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestStats() {
	_, err := s.service.Create(s.ctx, s.createInput())
	s.Require().NoError(err)
	s.Require().NoError(s.sessions.Create(s.ctx, testutil.NewSessionBuilder().ForAdmin(s.actor.ID).Build()))

	stats, err := s.service.Stats(context.Background())
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(2, stats.Active)
	s.Equal(0, stats.Inactive)
	s.Equal(1, stats.ActiveSessions)
}
