// Package testutil holds builders and helpers shared by package tests.
package testutil

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

// TestIDs are fixed identifiers for deterministic test data.
var TestIDs = struct {
	AdminID1   id.AdminID
	AdminID2   id.AdminID
	SessionID1 id.SessionID
	AppID1     id.ApplicationID
}{
	AdminID1:   id.AdminID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	AdminID2:   id.AdminID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
	SessionID1: id.SessionID(uuid.MustParse("eeee0000-0000-0000-0000-000000000001")),
	AppID1:     id.ApplicationID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
}

// TestPassword is the plaintext behind AdminBuilder's default hash.
const TestPassword = "correct-horse-battery"

var testPasswordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// AdminBuilder builds admins with active staff defaults.
type AdminBuilder struct {
	admin *models.Admin
}

func NewAdminBuilder() *AdminBuilder {
	now := time.Now().UTC()
	return &AdminBuilder{admin: &models.Admin{
		ID:           id.NewAdminID(),
		Email:        "admin-" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: testPasswordHash,
		FirstName:    "Test",
		LastName:     "Admin",
		Role:         models.RoleStaff,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
}

func (b *AdminBuilder) WithID(adminID id.AdminID) *AdminBuilder {
	b.admin.ID = adminID
	return b
}

func (b *AdminBuilder) WithEmail(email string) *AdminBuilder {
	b.admin.Email = email
	return b
}

func (b *AdminBuilder) WithRole(role models.Role) *AdminBuilder {
	b.admin.Role = role
	return b
}

func (b *AdminBuilder) WithPermissions(perms map[string]bool) *AdminBuilder {
	b.admin.Permissions = perms
	return b
}

func (b *AdminBuilder) Inactive() *AdminBuilder {
	b.admin.IsActive = false
	return b
}

func (b *AdminBuilder) Build() *models.Admin {
	return b.admin
}

// SessionBuilder builds active sessions expiring in one hour.
type SessionBuilder struct {
	session *models.Session
}

func NewSessionBuilder() *SessionBuilder {
	now := time.Now().UTC()
	return &SessionBuilder{session: &models.Session{
		ID:           id.NewSessionID(),
		AdminID:      TestIDs.AdminID1,
		Token:        "tok-" + uuid.NewString(),
		ExpiresAt:    now.Add(time.Hour),
		IsActive:     true,
		LastActivity: now,
		CreatedAt:    now,
	}}
}

func (b *SessionBuilder) ForAdmin(adminID id.AdminID) *SessionBuilder {
	b.session.AdminID = adminID
	return b
}

func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.session.Token = token
	return b
}

func (b *SessionBuilder) ExpiresAt(t time.Time) *SessionBuilder {
	b.session.ExpiresAt = t
	return b
}

func (b *SessionBuilder) Inactive() *SessionBuilder {
	b.session.IsActive = false
	return b
}

func (b *SessionBuilder) Build() *models.Session {
	return b.session
}
