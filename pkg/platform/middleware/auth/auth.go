// Package auth guards admin routes with the session validator and exposes
// the authenticated admin to downstream handlers.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

// Guard is the subset of the admin auth service the middleware needs.
type Guard interface {
	Authorize(ctx context.Context, src service.TokenSource, required ...models.Permission) service.Decision
	UpdateLastActivity(ctx context.Context, token string)
}

type ctxKey int

const (
	adminKey ctxKey = iota
	permissionsKey
	tokenKey
)

// AdminFromContext returns the admin stored by RequirePermission, or nil.
func AdminFromContext(ctx context.Context) *models.Admin {
	a, _ := ctx.Value(adminKey).(*models.Admin)
	return a
}

// PermissionsFromContext returns the resolved permission set, or nil.
func PermissionsFromContext(ctx context.Context) models.PermissionSet {
	p, _ := ctx.Value(permissionsKey).(models.PermissionSet)
	return p
}

// SessionTokenFromContext returns the token that authenticated the request.
func SessionTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(tokenKey).(string)
	return t
}

// WithAdmin stores an authenticated admin in ctx. Tests use it to bypass the guard.
func WithAdmin(ctx context.Context, admin *models.Admin, perms models.PermissionSet) context.Context {
	ctx = context.WithValue(ctx, adminKey, admin)
	return context.WithValue(ctx, permissionsKey, perms)
}

// RequirePermission admits requests whose session holds at least one of
// required. Rejections are written verbatim from the guard's decision.
// On success the admin is placed in the context and the session's last
// activity is touched before next runs.
func RequirePermission(guard Guard, logger *slog.Logger, required ...models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			src := service.HTTPRequestSource{R: r}

			decision := guard.Authorize(ctx, src, required...)
			if !decision.Authorized {
				logger.WarnContext(ctx, "admin request rejected",
					"status", decision.Status,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeDecision(w, decision)
				return
			}

			token := service.ExtractToken(src)
			guard.UpdateLastActivity(ctx, token)

			ctx = WithAdmin(ctx, decision.Admin, decision.Permissions)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeDecision(w http.ResponseWriter, d service.Decision) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.Status)
	_ = json.NewEncoder(w).Encode(d.Body)
}
