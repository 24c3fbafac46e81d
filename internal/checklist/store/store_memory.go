// Package store persists checklist items, listed by sort order then title.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/checklist/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu    sync.RWMutex
	items map[id.ChecklistItemID]*models.Item
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{items: make(map[id.ChecklistItemID]*models.Item)}
}

func (s *InMemoryStore) Create(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("checklist item %s: %w", item.ID, sentinel.ErrConflict)
	}
	c := *item
	s.items[item.ID] = &c
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, itemID id.ChecklistItemID) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("checklist item not found: %w", sentinel.ErrNotFound)
	}
	c := *item
	return &c, nil
}

// List returns items for visaType, or every item when visaType is empty.
func (s *InMemoryStore) List(_ context.Context, visaType models.VisaType) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Item, 0, len(s.items))
	for _, item := range s.items {
		if visaType != "" && item.VisaType != visaType {
			continue
		}
		c := *item
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return models.Less(out[i], out[j]) })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return fmt.Errorf("checklist item not found: %w", sentinel.ErrNotFound)
	}
	c := *item
	s.items[item.ID] = &c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, itemID id.ChecklistItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return fmt.Errorf("checklist item not found: %w", sentinel.ErrNotFound)
	}
	delete(s.items, itemID)
	return nil
}
