package handler

import (
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/validation"
)

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

func (r *LoginRequest) Normalize() {
	r.Email = models.NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() error {
	return validation.Validate(r)
}
