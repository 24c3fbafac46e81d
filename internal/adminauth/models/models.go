// Package models holds the admin identity and session entities shared by the
// stores, the session validator, and the HTTP layer.
package models

import (
	"strings"
	"time"

	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

// Role is the coarse-grained admin role. Unknown values are tolerated when
// read from storage and fall back to the staff permission list.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleAdmin          Role = "admin"
	RoleManager        Role = "manager"
	RoleStaff          Role = "staff"
	RoleFinanceManager Role = "finance_manager"
)

// ParseRole accepts only the five known roles.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleStaff, RoleFinanceManager:
		return r, true
	default:
		return "", false
	}
}

// Admin is a back-office identity. Admins are never hard-deleted.
type Admin struct {
	ID           id.AdminID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Department   *string
	IsActive     bool
	// Permissions is the explicit per-admin override. nil or empty means the
	// role table applies.
	Permissions map[string]bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLogin   *time.Time
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile is the public projection returned by the auth endpoints.
type Profile struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       Role    `json:"role"`
	Department *string `json:"department"`
}

func (a *Admin) Profile() Profile {
	return Profile{
		ID:         a.ID.String(),
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Role:       a.Role,
		Department: a.Department,
	}
}

// Session is an opaque-token admin session.
// Lifecycle: active -> inactive on expiry, logout or admin deactivation. Terminal.
type Session struct {
	ID           id.SessionID
	AdminID      id.AdminID
	Token        string
	ExpiresAt    time.Time
	IsActive     bool
	LastActivity time.Time
	CreatedAt    time.Time
	UserAgent    string
	DeviceLabel  string
	IPAddress    string
}

// IsExpired reports whether the session's expiry lies strictly before now.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// SessionWithAdmin is the result of the single-round-trip token lookup.
// Admin is nil when the owning admin row is missing.
type SessionWithAdmin struct {
	Session Session
	Admin   *Admin
}

// InvalidationReason labels why a session became inactive.
type InvalidationReason string

const (
	ReasonExpired     InvalidationReason = "expired"
	ReasonLogout      InvalidationReason = "logout"
	ReasonDeactivated InvalidationReason = "admin_deactivated"
	ReasonCleanup     InvalidationReason = "cleanup"
)
