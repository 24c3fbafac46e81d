// Package feedback accepts public visitor feedback and lets admins moderate
// it. Only approved entries are shown publicly.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, f *models.Feedback) error
	Find(ctx context.Context, feedbackID id.FeedbackID) (*models.Feedback, error)
	List(ctx context.Context, filter models.Filter) ([]*models.Feedback, error)
	Update(ctx context.Context, f *models.Feedback) error
	Delete(ctx context.Context, feedbackID id.FeedbackID) error
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

type SubmitInput struct {
	Name    string
	Email   string
	Rating  int
	Message string
}

// Submit stores new feedback as pending.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Feedback, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, dErrors.New(dErrors.CodeValidation, "rating must be between 1 and 5")
	}
	f := &models.Feedback{
		ID:        id.NewFeedbackID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Rating:    in.Rating,
		Message:   strings.TrimSpace(in.Message),
		Status:    models.StatusPending,
		CreatedAt: requesttime.Now(ctx),
	}
	if f.Name == "" || f.Message == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name and message are required")
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to submit feedback")
	}
	s.metrics.IncFeedbackSubmitted()
	return f, nil
}

func (s *Service) ListApproved(ctx context.Context) ([]models.PublicFeedback, error) {
	items, err := s.store.List(ctx, models.Filter{Status: models.StatusApproved})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list feedback")
	}
	out := make([]models.PublicFeedback, len(items))
	for i, f := range items {
		out[i] = f.Public()
	}
	return out, nil
}

// List is the moderation queue; an empty status lists everything.
func (s *Service) List(ctx context.Context, status string) ([]*models.Feedback, error) {
	var filter models.Filter
	if status != "" {
		filter.Status = models.Status(status)
		if !filter.Status.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown status %q", status))
		}
	}
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list feedback")
	}
	return items, nil
}

// Moderate approves or rejects feedback and records who decided and when.
func (s *Service) Moderate(ctx context.Context, actorID id.AdminID, rawID, status string) (*models.Feedback, error) {
	decision := models.Status(status)
	if !decision.IsDecision() {
		return nil, dErrors.New(dErrors.CodeValidation, "status must be approved or rejected")
	}
	feedbackID, err := id.ParseFeedbackID(rawID)
	if err != nil {
		return nil, err
	}
	f, err := s.store.Find(ctx, feedbackID)
	if err != nil {
		return nil, translate(err, "failed to load feedback")
	}
	now := requesttime.Now(ctx)
	f.Status = decision
	f.ModeratedAt = &now
	if !actorID.IsNil() {
		f.ModeratedBy = &actorID
	}
	if err := s.store.Update(ctx, f); err != nil {
		return nil, translate(err, "failed to moderate feedback")
	}
	s.metrics.IncFeedbackModerated(string(decision))
	s.logger.InfoContext(ctx, "feedback moderated", "feedback_id", f.ID.String(), "status", string(decision))
	return f, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	feedbackID, err := id.ParseFeedbackID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, feedbackID); err != nil {
		return translate(err, "failed to delete feedback")
	}
	return nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Feedback not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
