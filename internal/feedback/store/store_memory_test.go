package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

func entry(status models.Status, at time.Time) *models.Feedback {
	return &models.Feedback{
		ID:        id.NewFeedbackID(),
		Name:      "Nimal",
		Email:     "nimal@example.com",
		Rating:    5,
		Message:   "Smooth process",
		Status:    status,
		CreatedAt: at,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("list is newest first and filters by status", func(t *testing.T) {
		s := NewInMemory()
		old := entry(models.StatusApproved, base)
		recent := entry(models.StatusApproved, base.Add(time.Hour))
		pending := entry(models.StatusPending, base.Add(2*time.Hour))
		for _, f := range []*models.Feedback{old, recent, pending} {
			require.NoError(t, s.Create(ctx, f))
		}

		got, err := s.List(ctx, models.Filter{Status: models.StatusApproved})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, recent.ID, got[0].ID)

		all, err := s.List(ctx, models.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update and delete unknown ids", func(t *testing.T) {
		s := NewInMemory()
		assert.ErrorIs(t, s.Update(ctx, entry(models.StatusApproved, base)), sentinel.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, id.NewFeedbackID()), sentinel.ErrNotFound)
		_, err := s.Find(ctx, id.NewFeedbackID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("moderation is persisted", func(t *testing.T) {
		s := NewInMemory()
		f := entry(models.StatusPending, base)
		require.NoError(t, s.Create(ctx, f))

		mod := id.NewAdminID()
		at := base.Add(time.Minute)
		f.Status, f.ModeratedBy, f.ModeratedAt = models.StatusRejected, &mod, &at
		require.NoError(t, s.Update(ctx, f))

		got, err := s.Find(ctx, f.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, got.Status)
		require.NotNil(t, got.ModeratedBy)
		assert.Equal(t, mod, *got.ModeratedBy)
	})
}
