// Package admin persists admin identities.
//
// Error contract: Find* return sentinel.ErrNotFound when no row matches;
// Create and Update return sentinel.ErrConflict when the email is taken.
package admin

import (
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
)

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Role     *models.Role
	IsActive *bool
}

func (f Filter) matches(a *models.Admin) bool {
	if f.Role != nil && a.Role != *f.Role {
		return false
	}
	if f.IsActive != nil && a.IsActive != *f.IsActive {
		return false
	}
	return true
}

// Stats are the admin counts shown on the dashboard.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

func clone(a *models.Admin) *models.Admin {
	if a == nil {
		return nil
	}
	c := *a
	if a.Permissions != nil {
		c.Permissions = make(map[string]bool, len(a.Permissions))
		for k, v := range a.Permissions {
			c.Permissions[k] = v
		}
	}
	if a.Department != nil {
		d := *a.Department
		c.Department = &d
	}
	if a.LastLogin != nil {
		t := *a.LastLogin
		c.LastLogin = &t
	}
	return &c
}
