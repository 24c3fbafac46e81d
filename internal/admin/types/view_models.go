// Package types holds the JSON projections of admin accounts.
package types

import (
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
)

// AdminView is an admin account as returned by the CRUD endpoints. The
// password hash is never exposed.
type AdminView struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Role        models.Role     `json:"role"`
	Department  *string         `json:"department"`
	IsActive    bool            `json:"is_active"`
	Permissions map[string]bool `json:"permissions"`
	Effective   []string        `json:"effective_permissions"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	LastLogin   *time.Time      `json:"last_login"`
}

func NewAdminView(a *models.Admin) AdminView {
	return AdminView{
		ID:          a.ID.String(),
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Role:        a.Role,
		Department:  a.Department,
		IsActive:    a.IsActive,
		Permissions: a.Permissions,
		Effective:   models.ResolvePermissions(a).Strings(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		LastLogin:   a.LastLogin,
	}
}

func NewAdminViews(admins []*models.Admin) []AdminView {
	out := make([]AdminView, 0, len(admins))
	for _, a := range admins {
		out = append(out, NewAdminView(a))
	}
	return out
}
