// Package seeder bootstraps admin accounts and demo content.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	checklist "github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// DemoPassword is shared by every demo admin.
const DemoPassword = "demo-password"

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, a *models.Admin) error
}

type ChecklistStore interface {
	Create(ctx context.Context, item *checklist.Item) error
}

type Seeder struct {
	admins    AdminStore
	checklist ChecklistStore
	logger    *slog.Logger
	hashCost  int
}

func New(admins AdminStore, checklistStore ChecklistStore, logger *slog.Logger) *Seeder {
	return &Seeder{admins: admins, checklist: checklistStore, logger: logger, hashCost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost for tests.
func (s *Seeder) WithHashCost(cost int) *Seeder {
	s.hashCost = cost
	return s
}

// EnsureSuperAdmin creates a super admin with the given credentials unless an
// account with that email already exists. It reports whether it created one.
func (s *Seeder) EnsureSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	email = models.NormalizeEmail(email)
	_, err := s.admins.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return false, fmt.Errorf("looking up seed admin: %w", err)
	}
	if err := s.createAdmin(ctx, email, password, "Super", "Admin", models.RoleSuperAdmin); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "seed super admin created", "email", email)
	return true, nil
}

// SeedDemo populates empty stores with one admin per role and a starter
// checklist. Demo admins log in with DemoPassword.
func (s *Seeder) SeedDemo(ctx context.Context) error {
	s.logger.InfoContext(ctx, "seeding demo data...")

	demoAdmins := []struct {
		email     string
		firstName string
		role      models.Role
	}{
		{"super@example.com", "Sahan", models.RoleSuperAdmin},
		{"admin@example.com", "Anjali", models.RoleAdmin},
		{"manager@example.com", "Malik", models.RoleManager},
		{"finance@example.com", "Fathima", models.RoleFinanceManager},
		{"staff@example.com", "Suren", models.RoleStaff},
	}
	for _, d := range demoAdmins {
		if err := s.createAdmin(ctx, d.email, DemoPassword, d.firstName, "Demo", d.role); err != nil {
			return fmt.Errorf("failed to seed admins: %w", err)
		}
	}

	items := []struct {
		visa     checklist.VisaType
		title    string
		required bool
	}{
		{checklist.VisaStudent, "Valid passport", true},
		{checklist.VisaStudent, "University offer letter", true},
		{checklist.VisaStudent, "Proof of funds", true},
		{checklist.VisaStudent, "Language certificate", false},
		{checklist.VisaWork, "Valid passport", true},
		{checklist.VisaWork, "Signed employment contract", true},
		{checklist.VisaWork, "Recognised qualifications", true},
		{checklist.VisaWork, "Curriculum vitae", false},
	}
	now := time.Now().UTC()
	for i, it := range items {
		item := &checklist.Item{
			ID:         id.NewChecklistItemID(),
			VisaType:   it.visa,
			Title:      it.title,
			IsRequired: it.required,
			SortOrder:  i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.checklist.Create(ctx, item); err != nil {
			return fmt.Errorf("failed to seed checklist: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "demo data seeded successfully",
		"admins", len(demoAdmins),
		"checklist_items", len(items),
	)
	return nil
}

func (s *Seeder) createAdmin(ctx context.Context, email, password, first, last string, role models.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	now := time.Now().UTC()
	return s.admins.Create(ctx, &models.Admin{
		ID:           id.NewAdminID(),
		Email:        models.NormalizeEmail(email),
		PasswordHash: string(hash),
		FirstName:    first,
		LastName:     last,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
