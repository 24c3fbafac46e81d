package handler

import (
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
)

type LoginResponse struct {
	Success     bool                 `json:"success"`
	Admin       models.Profile       `json:"admin"`
	Permissions models.PermissionSet `json:"permissions"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

type ValidateResponse struct {
	Success     bool                 `json:"success"`
	Admin       models.Profile       `json:"admin"`
	Permissions models.PermissionSet `json:"permissions"`
}
