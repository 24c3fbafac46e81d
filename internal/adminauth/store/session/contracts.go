// Package session persists opaque admin sessions.
//
// Error contract: FindActiveByToken returns sentinel.ErrNotFound when no
// active session carries the token. Invalidation methods are idempotent and
// never fail because a session is already inactive.
package session

import (
	"context"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

// AdminReader resolves the owning admin for the in-memory join.
type AdminReader interface {
	FindByID(ctx context.Context, adminID id.AdminID) (*models.Admin, error)
}
