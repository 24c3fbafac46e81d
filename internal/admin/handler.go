package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/admin/types"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/httputil"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/auth"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

// Handler serves /api/admin/admins.
type Handler struct {
	service *Service
	guard   auth.Guard
	logger  *slog.Logger
}

func New(service *Service, guard auth.Guard, logger *slog.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

// Register mounts the routes, each behind its permission check.
func (h *Handler) Register(r chi.Router) {
	read := auth.RequirePermission(h.guard, h.logger, models.PermAdminRead, models.PermManageAdmins)
	create := auth.RequirePermission(h.guard, h.logger, models.PermAdminCreate, models.PermManageAdmins)
	update := auth.RequirePermission(h.guard, h.logger, models.PermAdminUpdate, models.PermManageAdmins)
	remove := auth.RequirePermission(h.guard, h.logger, models.PermAdminDelete, models.PermManageAdmins)

	r.Route("/api/admin/admins", func(r chi.Router) {
		r.With(read).Get("/", h.HandleList)
		r.With(read).Get("/stats", h.HandleStats)
		r.With(create).Post("/", h.HandleCreate)
		r.With(read).Get("/{id}", h.HandleGet)
		r.With(update).Put("/{id}", h.HandleUpdate)
		r.With(remove).Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := ListFilter{Role: r.URL.Query().Get("role")}
	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "is_active must be true or false"))
			return
		}
		f.IsActive = &active
	}

	admins, err := h.service.List(ctx, f)
	if err != nil {
		h.fail(ctx, w, "list admins failed", err)
		return
	}
	httputil.WriteList(w, types.NewAdminViews(admins), len(admins))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "get admin failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, types.NewAdminView(a), "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateAdminRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	a, err := h.service.Create(ctx, req.input())
	if err != nil {
		h.fail(ctx, w, "create admin failed", err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, types.NewAdminView(a), "Admin created successfully")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateAdminRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	a, err := h.service.Update(ctx, actorID(ctx), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.fail(ctx, w, "update admin failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, types.NewAdminView(a), "Admin updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Deactivate(ctx, actorID(ctx), chi.URLParam(r, "id")); err != nil {
		h.fail(ctx, w, "deactivate admin failed", err)
		return
	}
	httputil.WriteMessage(w, "Admin deactivated successfully")
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.fail(ctx, w, "admin stats failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, stats, "")
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"error", err, "request_id", requestcontext.RequestID(ctx)}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func actorID(ctx context.Context) id.AdminID {
	if a := auth.AdminFromContext(ctx); a != nil {
		return a.ID
	}
	return id.AdminID{}
}
