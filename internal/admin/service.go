// Package admin manages back-office admin accounts. Accounts are never
// deleted; removal deactivates the account and ends its sessions.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	adminStore "github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/store/admin"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// AdminStore persists admin identities.
type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByID(ctx context.Context, adminID id.AdminID) (*models.Admin, error)
	List(ctx context.Context, f adminStore.Filter) ([]*models.Admin, error)
	Update(ctx context.Context, a *models.Admin) error
	Stats(ctx context.Context) (adminStore.Stats, error)
}

// SessionStore is the session surface needed to end an admin's sessions.
type SessionStore interface {
	InvalidateByAdmin(ctx context.Context, adminID id.AdminID) (int, error)
	CountActive(ctx context.Context, now time.Time) (int, error)
}

type Service struct {
	admins   AdminStore
	sessions SessionStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
	hashCost int
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

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func NewService(admins AdminStore, sessions SessionStore, opts ...Option) *Service {
	svc := &Service{
		admins:   admins,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// DashboardStats are the counts shown on the back-office dashboard.
type DashboardStats struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	Inactive       int `json:"inactive"`
	ActiveSessions int `json:"active_sessions"`
}

type CreateInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string
	Department  *string
	Permissions map[string]bool
}

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	FirstName   *string
	LastName    *string
	Role        *string
	Department  *string
	Permissions *map[string]bool
	IsActive    *bool
}

type ListFilter struct {
	Role     string
	IsActive *bool
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.Admin, error) {
	var filter adminStore.Filter
	if f.Role != "" {
		role, ok := models.ParseRole(f.Role)
		if !ok {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", f.Role))
		}
		filter.Role = &role
	}
	filter.IsActive = f.IsActive
	admins, err := s.admins.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list admins")
	}
	return admins, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.Admin, error) {
	adminID, err := id.ParseAdminID(rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, adminID)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Admin, error) {
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", in.Role))
	}
	if err := checkPermissionNames(in.Permissions); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requesttime.Now(ctx)
	a := &models.Admin{
		ID:           id.NewAdminID(),
		Email:        models.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		Department:   in.Department,
		IsActive:     true,
		Permissions:  in.Permissions,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, a); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "An admin with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create admin")
	}
	s.metrics.IncAdminsCreated()
	s.logger.InfoContext(ctx, "admin created", "admin_id", a.ID.String(), "role", string(role))
	return a, nil
}

// Update applies in to the admin. actorID is the caller, who may not
// deactivate their own account.
func (s *Service) Update(ctx context.Context, actorID id.AdminID, rawID string, in UpdateInput) (*models.Admin, error) {
	adminID, err := id.ParseAdminID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.find(ctx, adminID)
	if err != nil {
		return nil, err
	}
	wasActive := a.IsActive

	if in.FirstName != nil {
		a.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		a.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		role, ok := models.ParseRole(*in.Role)
		if !ok {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", *in.Role))
		}
		a.Role = role
	}
	if in.Department != nil {
		dept := strings.TrimSpace(*in.Department)
		if dept == "" {
			a.Department = nil
		} else {
			a.Department = &dept
		}
	}
	if in.Permissions != nil {
		if err := checkPermissionNames(*in.Permissions); err != nil {
			return nil, err
		}
		a.Permissions = *in.Permissions
	}
	if in.IsActive != nil {
		if !*in.IsActive && adminID == actorID {
			return nil, dErrors.New(dErrors.CodeValidation, "You cannot deactivate your own account")
		}
		a.IsActive = *in.IsActive
	}
	a.UpdatedAt = requesttime.Now(ctx)

	if err := s.admins.Update(ctx, a); err != nil {
		return nil, s.translate(err, "failed to update admin")
	}
	if wasActive && !a.IsActive {
		s.endSessions(ctx, a.ID)
	}
	return a, nil
}

// Deactivate is the delete operation: the account is kept but disabled.
func (s *Service) Deactivate(ctx context.Context, actorID id.AdminID, rawID string) error {
	adminID, err := id.ParseAdminID(rawID)
	if err != nil {
		return err
	}
	if adminID == actorID {
		return dErrors.New(dErrors.CodeValidation, "You cannot delete your own account")
	}
	a, err := s.find(ctx, adminID)
	if err != nil {
		return err
	}
	if a.IsActive {
		a.IsActive = false
		a.UpdatedAt = requesttime.Now(ctx)
		if err := s.admins.Update(ctx, a); err != nil {
			return s.translate(err, "failed to deactivate admin")
		}
	}
	s.endSessions(ctx, a.ID)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	st, err := s.admins.Stats(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load admin stats")
	}
	active, err := s.sessions.CountActive(ctx, requesttime.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count sessions")
	}
	return &DashboardStats{
		Total:          st.Total,
		Active:         st.Active,
		Inactive:       st.Total - st.Active,
		ActiveSessions: active,
	}, nil
}

func (s *Service) find(ctx context.Context, adminID id.AdminID) (*models.Admin, error) {
	a, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, s.translate(err, "failed to load admin")
	}
	return a, nil
}

func (s *Service) endSessions(ctx context.Context, adminID id.AdminID) {
	n, err := s.sessions.InvalidateByAdmin(ctx, adminID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate sessions of deactivated admin",
			"admin_id", adminID.String(), "error", err)
		return
	}
	s.metrics.IncAdminsDeactivated()
	s.logger.InfoContext(ctx, "admin deactivated", "admin_id", adminID.String(), "sessions_ended", n)
}

func (s *Service) translate(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "Admin not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "An admin with this email already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func checkPermissionNames(perms map[string]bool) error {
	for name := range perms {
		if !models.Permission(name).IsKnown() {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown permission %q", name))
		}
	}
	return nil
}
