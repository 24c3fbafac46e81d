package service

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
)

const (
	MsgUnauthorized = "Unauthorized: Invalid or expired session"
	MsgForbidden    = "Forbidden: Insufficient permissions"
)

// UnauthorizedBody is returned verbatim with a 401.
type UnauthorizedBody struct {
	Error string `json:"error"`
}

// ForbiddenBody is returned verbatim with a 403.
type ForbiddenBody struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
	Current  []string `json:"current"`
}

// Decision is the guard's verdict. When Authorized is false, Status and Body
// form a ready-to-write response.
type Decision struct {
	Authorized  bool
	Status      int
	Body        any
	Admin       *models.Admin
	Permissions models.PermissionSet
	Session     *models.Session
}

// Authorize validates the session and checks that the admin holds at least
// one of required. An empty required list admits any valid session.
// It does not touch last activity.
func (s *Service) Authorize(ctx context.Context, src TokenSource, required ...models.Permission) Decision {
	ctx, span := s.tracer.Start(ctx, "adminauth.Authorize")
	defer span.End()
	span.SetAttributes(attribute.StringSlice("required", models.ToStrings(required)))

	res := s.ValidateSession(ctx, src)
	if !res.Valid {
		s.metrics.IncAuthorization(metrics.OutcomeInvalid)
		span.SetAttributes(attribute.String("decision", "unauthorized"))
		return Decision{
			Status: http.StatusUnauthorized,
			Body:   UnauthorizedBody{Error: MsgUnauthorized},
		}
	}

	if !res.Permissions.HasAny(required...) {
		s.metrics.IncAuthorization(metrics.OutcomeForbidden)
		span.SetAttributes(attribute.String("decision", "forbidden"))
		s.logger.WarnContext(ctx, "admin lacks required permission", withRequestID(ctx,
			"admin_id", res.Admin.ID.String(),
			"required", models.ToStrings(required),
		)...)
		return Decision{
			Status: http.StatusForbidden,
			Body: ForbiddenBody{
				Error:    MsgForbidden,
				Required: models.ToStrings(required),
				Current:  res.Permissions.Strings(),
			},
			Admin:       res.Admin,
			Permissions: res.Permissions,
		}
	}

	s.metrics.IncAuthorization(metrics.OutcomeAllowed)
	span.SetAttributes(attribute.String("decision", "allowed"))
	return Decision{
		Authorized:  true,
		Status:      http.StatusOK,
		Admin:       res.Admin,
		Permissions: res.Permissions,
		Session:     res.Session,
	}
}
