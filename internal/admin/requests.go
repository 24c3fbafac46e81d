package admin

import (
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	s "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/string"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/validation"
)

type CreateAdminRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8,max=72"`
	FirstName   string          `json:"first_name" validate:"required,notblank,max=100"`
	LastName    string          `json:"last_name" validate:"required,notblank,max=100"`
	Role        string          `json:"role" validate:"required,oneof=super_admin admin manager staff finance_manager"`
	Department  *string         `json:"department" validate:"omitempty,max=100"`
	Permissions map[string]bool `json:"permissions"`
}

func (r *CreateAdminRequest) Sanitize() {
	s.TrimStrings(&r.FirstName, &r.LastName, &r.Role)
	if r.Department != nil {
		s.TrimStrings(r.Department)
	}
}

func (r *CreateAdminRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

func (r *CreateAdminRequest) Validate() error {
	return validation.Validate(r)
}

func (r *CreateAdminRequest) input() CreateInput {
	return CreateInput{
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Role:        r.Role,
		Department:  r.Department,
		Permissions: r.Permissions,
	}
}

type UpdateAdminRequest struct {
	FirstName   *string          `json:"first_name" validate:"omitempty,notblank,max=100"`
	LastName    *string          `json:"last_name" validate:"omitempty,notblank,max=100"`
	Role        *string          `json:"role" validate:"omitempty,oneof=super_admin admin manager staff finance_manager"`
	Department  *string          `json:"department" validate:"omitempty,max=100"`
	Permissions *map[string]bool `json:"permissions"`
	IsActive    *bool            `json:"is_active"`
}

func (r *UpdateAdminRequest) Validate() error {
	return validation.Validate(r)
}

func (r *UpdateAdminRequest) input() UpdateInput {
	return UpdateInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Role:        r.Role,
		Department:  r.Department,
		Permissions: r.Permissions,
		IsActive:    r.IsActive,
	}
}
