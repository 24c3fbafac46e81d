// Package authstub provides an in-process admin guard for handler tests.
package authstub

import (
	"context"
	"net/http"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
)

// StubGuard authorizes as a fixed admin using the real permission rules.
// A nil Admin makes every request unauthenticated.
type StubGuard struct {
	Admin *models.Admin
}

func (g *StubGuard) Authorize(_ context.Context, _ service.TokenSource, required ...models.Permission) service.Decision {
	if g.Admin == nil {
		return service.Decision{Status: http.StatusUnauthorized, Body: service.UnauthorizedBody{Error: service.MsgUnauthorized}}
	}
	perms := models.ResolvePermissions(g.Admin)
	if !perms.HasAny(required...) {
		return service.Decision{
			Status: http.StatusForbidden,
			Body: service.ForbiddenBody{
				Error:    service.MsgForbidden,
				Required: models.ToStrings(required),
				Current:  perms.Strings(),
			},
		}
	}
	return service.Decision{Authorized: true, Status: http.StatusOK, Admin: g.Admin, Permissions: perms}
}

func (g *StubGuard) UpdateLastActivity(context.Context, string) {}
