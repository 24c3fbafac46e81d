package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" manager ")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, r)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, (&Session{ExpiresAt: now.Add(-time.Second)}).IsExpired(now))
	assert.False(t, (&Session{ExpiresAt: now}).IsExpired(now), "expiry equal to now is still live")
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Hour)}).IsExpired(now))
}

func TestAdmin_Profile(t *testing.T) {
	dept := "Admissions"
	a := &Admin{
		ID:           id.NewAdminID(),
		Email:        "ops@example.com",
		PasswordHash: "secret",
		FirstName:    "Ada",
		LastName:     "Perera",
		Role:         RoleStaff,
		Department:   &dept,
	}

	p := a.Profile()
	assert.Equal(t, a.ID.String(), p.ID)
	assert.Equal(t, "Admissions", *p.Department)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ops@example.com", NormalizeEmail("  Ops@Example.COM "))
}
