// Package timeline serves the application timeline: dated events per visa
// application and the internal notes admins attach to them.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// MaxBulkIDs caps the number of events a bulk request may touch.
const MaxBulkIDs = 100

type Store interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	FindEvent(ctx context.Context, eventID id.TimelineEventID) (*models.Event, error)
	ListEvents(ctx context.Context, f models.Filter) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, eventID id.TimelineEventID) error
	BulkUpdateStatus(ctx context.Context, ids []id.TimelineEventID, status models.Status, at time.Time) (int, error)
	BulkDelete(ctx context.Context, ids []id.TimelineEventID) (int, error)
	CreateNote(ctx context.Context, n *models.Note) error
	ListNotes(ctx context.Context, eventID id.TimelineEventID) ([]*models.Note, error)
	DeleteNote(ctx context.Context, eventID id.TimelineEventID, noteID id.NoteID) error
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(store Store, opts ...Option) *Service {
	svc := &Service{store: store}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

type ListFilter struct {
	ApplicationID string
	Status        string
	EventType     string
}

type CreateInput struct {
	ApplicationID   string
	ApplicationType string
	Title           string
	Description     string
	EventType       string
	Status          string
	EventDate       time.Time
}

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	ApplicationType *string
	Title           *string
	Description     *string
	EventType       *string
	Status          *string
	EventDate       *time.Time
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*models.Event, error) {
	var filter models.Filter
	if f.ApplicationID != "" {
		appID, err := id.ParseApplicationID(f.ApplicationID)
		if err != nil {
			return nil, err
		}
		filter.ApplicationID = &appID
	}
	if f.Status != "" {
		st, err := parseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	if f.EventType != "" {
		et, err := parseEventType(f.EventType)
		if err != nil {
			return nil, err
		}
		filter.EventType = et
	}
	events, err := s.store.ListEvents(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list timeline events")
	}
	return events, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.Event, error) {
	eventID, err := id.ParseTimelineEventID(rawID)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, eventID)
}

// Create records a new event authored by actorID. Status defaults to pending.
func (s *Service) Create(ctx context.Context, actorID id.AdminID, in CreateInput) (*models.Event, error) {
	appID, err := id.ParseApplicationID(in.ApplicationID)
	if err != nil {
		return nil, err
	}
	appType := models.ApplicationType(in.ApplicationType)
	if !appType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown application type %q", in.ApplicationType))
	}
	eventType, err := parseEventType(in.EventType)
	if err != nil {
		return nil, err
	}
	status := models.StatusPending
	if in.Status != "" {
		if status, err = parseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if in.EventDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "event_date is required")
	}

	now := requesttime.Now(ctx)
	e := &models.Event{
		ID:              id.NewTimelineEventID(),
		ApplicationID:   appID,
		ApplicationType: appType,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		EventType:       eventType,
		Status:          status,
		EventDate:       in.EventDate.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !actorID.IsNil() {
		e.CreatedBy = &actorID
	}
	if err := s.store.CreateEvent(ctx, e); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create timeline event")
	}
	s.metrics.AddTimelineMutations("create", 1)
	s.logger.InfoContext(ctx, "timeline event created",
		"event_id", e.ID.String(), "application_id", appID.String(), "event_type", string(eventType))
	return e, nil
}

func (s *Service) Update(ctx context.Context, rawID string, in UpdateInput) (*models.Event, error) {
	e, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if in.ApplicationType != nil {
		appType := models.ApplicationType(*in.ApplicationType)
		if !appType.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown application type %q", *in.ApplicationType))
		}
		e.ApplicationType = appType
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "title must not be blank")
		}
		e.Title = title
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.EventType != nil {
		if e.EventType, err = parseEventType(*in.EventType); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		if e.Status, err = parseStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.EventDate != nil {
		e.EventDate = in.EventDate.UTC()
	}
	e.UpdatedAt = requesttime.Now(ctx)

	if err := s.store.UpdateEvent(ctx, e); err != nil {
		return nil, translate(err, "failed to update timeline event")
	}
	s.metrics.AddTimelineMutations("update", 1)
	return e, nil
}

// SetStatus is the PATCH shortcut for a status-only change.
func (s *Service) SetStatus(ctx context.Context, rawID, status string) (*models.Event, error) {
	return s.Update(ctx, rawID, UpdateInput{Status: &status})
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	eventID, err := id.ParseTimelineEventID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, eventID); err != nil {
		return translate(err, "failed to delete timeline event")
	}
	s.metrics.AddTimelineMutations("delete", 1)
	s.logger.InfoContext(ctx, "timeline event deleted", "event_id", eventID.String())
	return nil
}

// BulkUpdateStatus sets status on every listed event and returns how many
// existed.
func (s *Service) BulkUpdateStatus(ctx context.Context, rawIDs []string, status string) (int, error) {
	ids, err := parseBulkIDs(rawIDs)
	if err != nil {
		return 0, err
	}
	st, err := parseStatus(status)
	if err != nil {
		return 0, err
	}
	n, err := s.store.BulkUpdateStatus(ctx, ids, st, requesttime.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update timeline events")
	}
	s.metrics.AddTimelineMutations("bulk_update", n)
	s.logger.InfoContext(ctx, "timeline events bulk updated", "requested", len(ids), "updated", n, "status", string(st))
	return n, nil
}

func (s *Service) BulkDelete(ctx context.Context, rawIDs []string) (int, error) {
	ids, err := parseBulkIDs(rawIDs)
	if err != nil {
		return 0, err
	}
	n, err := s.store.BulkDelete(ctx, ids)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete timeline events")
	}
	s.metrics.AddTimelineMutations("bulk_delete", n)
	s.logger.InfoContext(ctx, "timeline events bulk deleted", "requested", len(ids), "deleted", n)
	return n, nil
}

func (s *Service) ListNotes(ctx context.Context, rawEventID string) ([]*models.Note, error) {
	eventID, err := id.ParseTimelineEventID(rawEventID)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.ListNotes(ctx, eventID)
	if err != nil {
		return nil, translate(err, "failed to list notes")
	}
	return notes, nil
}

func (s *Service) AddNote(ctx context.Context, actorID id.AdminID, rawEventID, body string) (*models.Note, error) {
	eventID, err := id.ParseTimelineEventID(rawEventID)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "body is required")
	}
	n := &models.Note{
		ID:        id.NewNoteID(),
		EventID:   eventID,
		AdminID:   actorID,
		Body:      body,
		CreatedAt: requesttime.Now(ctx),
	}
	if err := s.store.CreateNote(ctx, n); err != nil {
		return nil, translate(err, "failed to add note")
	}
	s.metrics.AddTimelineMutations("note_add", 1)
	return n, nil
}

func (s *Service) DeleteNote(ctx context.Context, rawEventID, rawNoteID string) error {
	eventID, err := id.ParseTimelineEventID(rawEventID)
	if err != nil {
		return err
	}
	noteID, err := id.ParseNoteID(rawNoteID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, eventID, noteID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Note not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete note")
	}
	s.metrics.AddTimelineMutations("note_delete", 1)
	return nil
}

func (s *Service) find(ctx context.Context, eventID id.TimelineEventID) (*models.Event, error) {
	e, err := s.store.FindEvent(ctx, eventID)
	if err != nil {
		return nil, translate(err, "failed to load timeline event")
	}
	return e, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Timeline event not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func parseStatus(raw string) (models.Status, error) {
	st := models.Status(raw)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown status %q", raw))
	}
	return st, nil
}

func parseEventType(raw string) (models.EventType, error) {
	et := models.EventType(raw)
	if !et.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown event type %q", raw))
	}
	return et, nil
}

// parseBulkIDs requires 1..MaxBulkIDs well-formed IDs and drops duplicates.
func parseBulkIDs(raw []string) ([]id.TimelineEventID, error) {
	if len(raw) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "ids must contain at least 1 item")
	}
	if len(raw) > MaxBulkIDs {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("ids must contain at most %d items", MaxBulkIDs))
	}
	seen := make(map[id.TimelineEventID]struct{}, len(raw))
	out := make([]id.TimelineEventID, 0, len(raw))
	for _, r := range raw {
		eventID, err := id.ParseTimelineEventID(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[eventID]; dup {
			continue
		}
		seen[eventID] = struct{}{}
		out = append(out, eventID)
	}
	return out, nil
}
