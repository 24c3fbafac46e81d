package models

import (
	"slices"
	"time"

	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	return slices.Contains([]Status{StatusPending, StatusApproved, StatusRejected}, s)
}

// IsDecision reports whether s is a moderation outcome.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type Feedback struct {
	ID          id.FeedbackID `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Rating      int           `json:"rating"`
	Message     string        `json:"message"`
	Status      Status        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ModeratedBy *id.AdminID   `json:"moderated_by"`
	ModeratedAt *time.Time    `json:"moderated_at"`
}

// PublicFeedback is what anonymous visitors see; the email stays private.
type PublicFeedback struct {
	ID        id.FeedbackID `json:"id"`
	Name      string        `json:"name"`
	Rating    int           `json:"rating"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}

func (f *Feedback) Public() PublicFeedback {
	return PublicFeedback{ID: f.ID, Name: f.Name, Rating: f.Rating, Message: f.Message, CreatedAt: f.CreatedAt}
}

// Filter narrows listings; an empty Status matches all.
type Filter struct {
	Status Status
}
