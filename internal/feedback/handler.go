package feedback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
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

// Register mounts the public /api/feedback routes and the guarded
// /api/admin/feedback moderation routes. submitLimit, when non-nil, wraps
// the public submission route.
func (h *Handler) Register(r chi.Router, submitLimit func(http.Handler) http.Handler) {
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", h.HandleListPublic)
		if submitLimit != nil {
			r.With(submitLimit).Post("/", h.HandleSubmit)
		} else {
			r.Post("/", h.HandleSubmit)
		}
	})

	view := auth.RequirePermission(h.guard, h.logger, models.PermFeedbackModerate, models.PermAccessAllData)
	moderate := auth.RequirePermission(h.guard, h.logger, models.PermFeedbackModerate)
	r.Route("/api/admin/feedback", func(r chi.Router) {
		r.With(view).Get("/", h.HandleList)
		r.With(moderate).Patch("/{id}", h.HandleModerate)
		r.With(moderate).Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.service.Submit(ctx, SubmitInput{Name: req.Name, Email: req.Email, Rating: req.Rating, Message: req.Message})
	if err != nil {
		h.fail(ctx, w, "submit feedback failed", err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, f.Public(), "Thank you for your feedback")
}

func (h *Handler) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.service.ListApproved(ctx)
	if err != nil {
		h.fail(ctx, w, "list public feedback failed", err)
		return
	}
	httputil.WriteList(w, items, len(items))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := h.service.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.fail(ctx, w, "list feedback failed", err)
		return
	}
	httputil.WriteList(w, items, len(items))
}

func (h *Handler) HandleModerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ModerateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	var actor id.AdminID
	if a := auth.AdminFromContext(ctx); a != nil {
		actor = a.ID
	}
	f, err := h.service.Moderate(ctx, actor, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(ctx, w, "moderate feedback failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, f, "Feedback "+string(f.Status))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.fail(ctx, w, "delete feedback failed", err)
		return
	}
	httputil.WriteMessage(w, "Feedback deleted successfully")
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	} else {
		h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}
