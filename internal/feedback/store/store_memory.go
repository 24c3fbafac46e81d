// Package store persists visitor feedback. Listings are newest first;
// unknown IDs yield sentinel.ErrNotFound.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/feedback/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	items map[id.FeedbackID]*models.Feedback
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{items: make(map[id.FeedbackID]*models.Feedback)}
}

func (s *InMemoryStore) Create(_ context.Context, f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[f.ID]; exists {
		return fmt.Errorf("feedback %s: %w", f.ID, sentinel.ErrConflict)
	}
	c := *f
	s.items[f.ID] = &c
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, feedbackID id.FeedbackID) (*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.items[feedbackID]
	if !ok {
		return nil, fmt.Errorf("feedback not found: %w", sentinel.ErrNotFound)
	}
	c := *f
	return &c, nil
}

func (s *InMemoryStore) List(_ context.Context, filter models.Filter) ([]*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Feedback, 0, len(s.items))
	for _, f := range s.items {
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		c := *f
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[f.ID]; !ok {
		return fmt.Errorf("feedback not found: %w", sentinel.ErrNotFound)
	}
	c := *f
	s.items[f.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, feedbackID id.FeedbackID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[feedbackID]; !ok {
		return fmt.Errorf("feedback not found: %w", sentinel.ErrNotFound)
	}
	delete(s.items, feedbackID)
	return nil
}
