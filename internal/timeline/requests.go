package timeline

import (
	"time"

	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	s "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/string"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/validation"
)

// Dates arrive either as RFC 3339 timestamps or as plain calendar days.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "event_date must be an RFC 3339 timestamp or YYYY-MM-DD")
}

type CreateEventRequest struct {
	ApplicationID   string `json:"application_id" validate:"required,uuid"`
	ApplicationType string `json:"application_type" validate:"required,oneof=student work"`
	Title           string `json:"title" validate:"required,notblank,max=200"`
	Description     string `json:"description" validate:"max=2000"`
	EventType       string `json:"event_type" validate:"required,oneof=milestone appointment deadline document update"`
	Status          string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	EventDate       string `json:"event_date" validate:"required"`

	eventDate time.Time
}

func (r *CreateEventRequest) Sanitize() {
	s.TrimStrings(&r.ApplicationID, &r.ApplicationType, &r.Title, &r.Description, &r.EventType, &r.Status, &r.EventDate)
}

func (r *CreateEventRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	t, err := parseEventDate(r.EventDate)
	if err != nil {
		return err
	}
	r.eventDate = t
	return nil
}

func (r *CreateEventRequest) input() CreateInput {
	return CreateInput{
		ApplicationID:   r.ApplicationID,
		ApplicationType: r.ApplicationType,
		Title:           r.Title,
		Description:     r.Description,
		EventType:       r.EventType,
		Status:          r.Status,
		EventDate:       r.eventDate,
	}
}

type UpdateEventRequest struct {
	ApplicationType *string `json:"application_type" validate:"omitempty,oneof=student work"`
	Title           *string `json:"title" validate:"omitempty,notblank,max=200"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	EventType       *string `json:"event_type" validate:"omitempty,oneof=milestone appointment deadline document update"`
	Status          *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	EventDate       *string `json:"event_date"`

	eventDate *time.Time
}

func (r *UpdateEventRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.EventDate != nil {
		t, err := parseEventDate(*r.EventDate)
		if err != nil {
			return err
		}
		r.eventDate = &t
	}
	return nil
}

func (r *UpdateEventRequest) input() UpdateInput {
	return UpdateInput{
		ApplicationType: r.ApplicationType,
		Title:           r.Title,
		Description:     r.Description,
		EventType:       r.EventType,
		Status:          r.Status,
		EventDate:       r.eventDate,
	}
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

func (r *StatusRequest) Validate() error {
	return validation.Validate(r)
}

type BulkUpdateRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status string   `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

func (r *BulkUpdateRequest) Validate() error {
	return validation.Validate(r)
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
}

func (r *BulkDeleteRequest) Validate() error {
	return validation.Validate(r)
}

type NoteRequest struct {
	Body string `json:"body" validate:"required,notblank,max=5000"`
}

func (r *NoteRequest) Sanitize() {
	s.TrimStrings(&r.Body)
}

func (r *NoteRequest) Validate() error {
	return validation.Validate(r)
}

// BulkResult reports how many events a bulk operation touched.
type BulkResult struct {
	Requested int `json:"requested"`
	Affected  int `json:"affected"`
}
