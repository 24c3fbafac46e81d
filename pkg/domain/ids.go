// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing AdminID where SessionID is expected.
type (
	AdminID         uuid.UUID
	SessionID       uuid.UUID
	ApplicationID   uuid.UUID
	TimelineEventID uuid.UUID
	NoteID          uuid.UUID
	FeedbackID      uuid.UUID
	ChecklistItemID uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseAdminID(s string) (AdminID, error) {
	id, err := parseUUID(s, "admin ID")
	return AdminID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	id, err := parseUUID(s, "application ID")
	return ApplicationID(id), err
}

func ParseTimelineEventID(s string) (TimelineEventID, error) {
	id, err := parseUUID(s, "timeline event ID")
	return TimelineEventID(id), err
}

func ParseNoteID(s string) (NoteID, error) {
	id, err := parseUUID(s, "note ID")
	return NoteID(id), err
}

func ParseFeedbackID(s string) (FeedbackID, error) {
	id, err := parseUUID(s, "feedback ID")
	return FeedbackID(id), err
}

func ParseChecklistItemID(s string) (ChecklistItemID, error) {
	id, err := parseUUID(s, "checklist item ID")
	return ChecklistItemID(id), err
}

// Constructors for freshly minted identifiers.

func NewAdminID() AdminID                 { return AdminID(uuid.New()) }
func NewSessionID() SessionID             { return SessionID(uuid.New()) }
func NewTimelineEventID() TimelineEventID { return TimelineEventID(uuid.New()) }
func NewNoteID() NoteID                   { return NoteID(uuid.New()) }
func NewFeedbackID() FeedbackID           { return FeedbackID(uuid.New()) }
func NewChecklistItemID() ChecklistItemID { return ChecklistItemID(uuid.New()) }

// String methods - for logging and JSON responses.

func (id AdminID) String() string         { return uuid.UUID(id).String() }
func (id SessionID) String() string       { return uuid.UUID(id).String() }
func (id ApplicationID) String() string   { return uuid.UUID(id).String() }
func (id TimelineEventID) String() string { return uuid.UUID(id).String() }
func (id NoteID) String() string          { return uuid.UUID(id).String() }
func (id FeedbackID) String() string      { return uuid.UUID(id).String() }
func (id ChecklistItemID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id AdminID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id TimelineEventID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NoteID) IsNil() bool          { return uuid.UUID(id) == uuid.Nil }
func (id FeedbackID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ChecklistItemID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders IDs as canonical UUID strings in JSON.

func (id AdminID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id ApplicationID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id TimelineEventID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NoteID) MarshalText() ([]byte, error)          { return uuid.UUID(id).MarshalText() }
func (id FeedbackID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ChecklistItemID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// parseUUID rejects empty, malformed and nil UUIDs.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
