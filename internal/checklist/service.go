// Package checklist serves the per-visa-type document checklist: public
// reads, admin-managed writes.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/models"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/metrics"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	dErrors "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain-errors"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/middleware/requesttime"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, item *models.Item) error
	Find(ctx context.Context, itemID id.ChecklistItemID) (*models.Item, error)
	List(ctx context.Context, visaType models.VisaType) ([]*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, itemID id.ChecklistItemID) error
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

type CreateInput struct {
	VisaType    string
	Title       string
	Description string
	IsRequired  *bool
	SortOrder   int
}

// UpdateInput carries optional changes; nil fields are left untouched.
type UpdateInput struct {
	VisaType    *string
	Title       *string
	Description *string
	IsRequired  *bool
	SortOrder   *int
}

func (s *Service) List(ctx context.Context, visaType string) ([]*models.Item, error) {
	vt := models.VisaType(visaType)
	if vt != "" && !vt.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown visa type %q", visaType))
	}
	items, err := s.store.List(ctx, vt)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list checklist items")
	}
	return items, nil
}

// Create adds an item. Items are required unless stated otherwise.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Item, error) {
	vt := models.VisaType(in.VisaType)
	if !vt.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown visa type %q", in.VisaType))
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	required := true
	if in.IsRequired != nil {
		required = *in.IsRequired
	}
	now := requesttime.Now(ctx)
	item := &models.Item{
		ID:          id.NewChecklistItemID(),
		VisaType:    vt,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		IsRequired:  required,
		SortOrder:   in.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create checklist item")
	}
	s.metrics.IncChecklistChange("create")
	return item, nil
}

func (s *Service) Update(ctx context.Context, rawID string, in UpdateInput) (*models.Item, error) {
	itemID, err := id.ParseChecklistItemID(rawID)
	if err != nil {
		return nil, err
	}
	item, err := s.store.Find(ctx, itemID)
	if err != nil {
		return nil, translate(err, "failed to load checklist item")
	}
	if in.VisaType != nil {
		vt := models.VisaType(*in.VisaType)
		if !vt.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown visa type %q", *in.VisaType))
		}
		item.VisaType = vt
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "title must not be blank")
		}
		item.Title = title
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsRequired != nil {
		item.IsRequired = *in.IsRequired
	}
	if in.SortOrder != nil {
		item.SortOrder = *in.SortOrder
	}
	item.UpdatedAt = requesttime.Now(ctx)

	if err := s.store.Update(ctx, item); err != nil {
		return nil, translate(err, "failed to update checklist item")
	}
	s.metrics.IncChecklistChange("update")
	return item, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	itemID, err := id.ParseChecklistItemID(rawID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, itemID); err != nil {
		return translate(err, "failed to delete checklist item")
	}
	s.metrics.IncChecklistChange("delete")
	s.logger.InfoContext(ctx, "checklist item deleted", "item_id", itemID.String())
	return nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Checklist item not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
