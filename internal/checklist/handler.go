package checklist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/httputil"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/auth"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

type Handler struct {
	service *Service
	guard   auth.Guard
	logger  *slog.Logger
}

func New(service *Service, guard auth.Guard, logger *slog.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/checklist", h.HandleList)

	manage := auth.RequirePermission(h.guard, h.logger, models.PermChecklistManage, models.PermAccessAllData)
	r.Route("/api/admin/checklist", func(r chi.Router) {
		r.Use(manage)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.service.List(ctx, r.URL.Query().Get("visa_type"))
	if err != nil {
		h.fail(ctx, w, "list checklist failed", err)
		return
	}
	httputil.WriteList(w, items, len(items))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	item, err := h.service.Create(ctx, CreateInput{
		VisaType:    req.VisaType,
		Title:       req.Title,
		Description: req.Description,
		IsRequired:  req.IsRequired,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.fail(ctx, w, "create checklist item failed", err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, item, "Checklist item created successfully")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateItemRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	item, err := h.service.Update(ctx, chi.URLParam(r, "id"), UpdateInput{
		VisaType:    req.VisaType,
		Title:       req.Title,
		Description: req.Description,
		IsRequired:  req.IsRequired,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.fail(ctx, w, "update checklist item failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, item, "Checklist item updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.fail(ctx, w, "delete checklist item failed", err)
		return
	}
	httputil.WriteMessage(w, "Checklist item deleted successfully")
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	} else {
		h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
