package timeline

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

// Handler serves /api/admin/timeline-events.
type Handler struct {
	service *Service
	guard   auth.Guard
	logger  *slog.Logger
}

func New(service *Service, guard auth.Guard, logger *slog.Logger) *Handler {
	return &Handler{service: service, guard: guard, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	read := auth.RequirePermission(h.guard, h.logger, models.PermTimelineRead, models.PermAccessAllData, models.PermViewBasicData)
	create := auth.RequirePermission(h.guard, h.logger, models.PermTimelineCreate, models.PermManageTimeline)
	update := auth.RequirePermission(h.guard, h.logger, models.PermTimelineUpdate, models.PermManageTimeline)
	remove := auth.RequirePermission(h.guard, h.logger, models.PermTimelineDelete, models.PermManageTimeline)

	r.Route("/api/admin/timeline-events", func(r chi.Router) {
		r.With(read).Get("/", h.HandleList)
		r.With(create).Post("/", h.HandleCreate)
		r.With(update).Post("/bulk-update", h.HandleBulkUpdate)
		r.With(remove).Post("/bulk-delete", h.HandleBulkDelete)
		r.With(read).Get("/{id}", h.HandleGet)
		r.With(update).Put("/{id}", h.HandleUpdate)
		r.With(update).Patch("/{id}", h.HandleSetStatus)
		r.With(remove).Delete("/{id}", h.HandleDelete)
		r.With(read).Get("/{id}/notes", h.HandleListNotes)
		r.With(update).Post("/{id}/notes", h.HandleAddNote)
		r.With(remove).Delete("/{id}/notes/{noteID}", h.HandleDeleteNote)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	events, err := h.service.List(ctx, ListFilter{
		ApplicationID: q.Get("application_id"),
		Status:        q.Get("status"),
		EventType:     q.Get("event_type"),
	})
	if err != nil {
		h.fail(ctx, w, "list timeline events failed", err)
		return
	}
	httputil.WriteList(w, events, len(events))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "get timeline event failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, e, "")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	e, err := h.service.Create(ctx, actorID(ctx), req.input())
	if err != nil {
		h.fail(ctx, w, "create timeline event failed", err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, e, "Timeline event created successfully")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	e, err := h.service.Update(ctx, chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.fail(ctx, w, "update timeline event failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, e, "Timeline event updated successfully")
}

func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	e, err := h.service.SetStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(ctx, w, "set timeline status failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, e, "Status updated successfully")
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.fail(ctx, w, "delete timeline event failed", err)
		return
	}
	httputil.WriteMessage(w, "Timeline event deleted successfully")
}

func (h *Handler) HandleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BulkUpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.BulkUpdateStatus(ctx, req.IDs, req.Status)
	if err != nil {
		h.fail(ctx, w, "bulk update timeline events failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, BulkResult{Requested: len(req.IDs), Affected: n}, "Timeline events updated")
}

func (h *Handler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BulkDeleteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.BulkDelete(ctx, req.IDs)
	if err != nil {
		h.fail(ctx, w, "bulk delete timeline events failed", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, BulkResult{Requested: len(req.IDs), Affected: n}, "Timeline events deleted")
}

func (h *Handler) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notes, err := h.service.ListNotes(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "list notes failed", err)
		return
	}
	httputil.WriteList(w, notes, len(notes))
}

func (h *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	n, err := h.service.AddNote(ctx, actorID(ctx), chi.URLParam(r, "id"), req.Body)
	if err != nil {
		h.fail(ctx, w, "add note failed", err)
		return
	}
	httputil.WriteData(w, http.StatusCreated, n, "Note added successfully")
}

func (h *Handler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeleteNote(ctx, chi.URLParam(r, "id"), chi.URLParam(r, "noteID")); err != nil {
		h.fail(ctx, w, "delete note failed", err)
		return
	}
	httputil.WriteMessage(w, "Note deleted successfully")
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
