// Package models defines timeline events attached to visa applications and
// the internal notes admins leave on them.
package models

import (
	"slices"
	"time"

	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

type ApplicationType string

const (
	ApplicationStudent ApplicationType = "student"
	ApplicationWork    ApplicationType = "work"
)

type EventType string

const (
	EventMilestone   EventType = "milestone"
	EventAppointment EventType = "appointment"
	EventDeadline    EventType = "deadline"
	EventDocument    EventType = "document"
	EventUpdate      EventType = "update"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	applicationTypes = []ApplicationType{ApplicationStudent, ApplicationWork}
	eventTypes       = []EventType{EventMilestone, EventAppointment, EventDeadline, EventDocument, EventUpdate}
	statuses         = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
)

func (t ApplicationType) IsValid() bool { return slices.Contains(applicationTypes, t) }
func (t EventType) IsValid() bool       { return slices.Contains(eventTypes, t) }
func (s Status) IsValid() bool          { return slices.Contains(statuses, s) }

type Event struct {
	ID              id.TimelineEventID `json:"id"`
	ApplicationID   id.ApplicationID   `json:"application_id"`
	ApplicationType ApplicationType    `json:"application_type"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	EventType       EventType          `json:"event_type"`
	Status          Status             `json:"status"`
	EventDate       time.Time          `json:"event_date"`
	CreatedBy       *id.AdminID        `json:"created_by"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type Note struct {
	ID        id.NoteID          `json:"id"`
	EventID   id.TimelineEventID `json:"event_id"`
	AdminID   id.AdminID         `json:"admin_id"`
	Body      string             `json:"body"`
	CreatedAt time.Time          `json:"created_at"`
}

// Filter narrows event listings. Zero values mean "any".
type Filter struct {
	ApplicationID *id.ApplicationID
	Status        Status
	EventType     EventType
}

func (f Filter) Matches(e *Event) bool {
	if f.ApplicationID != nil && e.ApplicationID != *f.ApplicationID {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	return true
}
