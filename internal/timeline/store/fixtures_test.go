package store

import (
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

func newEvent(app id.ApplicationID, at time.Time) *models.Event {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &models.Event{
		ID:              id.NewTimelineEventID(),
		ApplicationID:   app,
		ApplicationType: models.ApplicationStudent,
		Title:           "Biometrics appointment",
		EventType:       models.EventAppointment,
		Status:          models.StatusPending,
		EventDate:       at,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
