// Package store persists timeline events and their notes.
//
// Error contract: Find/Update/Delete return sentinel.ErrNotFound for unknown
// IDs. Deleting an event removes its notes. Bulk operations skip unknown IDs
// and report how many rows changed.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.TimelineEventID]*models.Event
	notes  map[id.TimelineEventID][]*models.Note
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		events: make(map[id.TimelineEventID]*models.Event),
		notes:  make(map[id.TimelineEventID][]*models.Note),
	}
}

func (s *InMemoryStore) CreateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[e.ID]; exists {
		return fmt.Errorf("timeline event %s: %w", e.ID, sentinel.ErrConflict)
	}
	c := *e
	s.events[e.ID] = &c
	return nil
}

func (s *InMemoryStore) FindEvent(_ context.Context, eventID id.TimelineEventID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[eventID]
	if !ok {
		return nil, fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	c := *e
	return &c, nil
}

// ListEvents returns matching events ordered by event date, oldest first.
func (s *InMemoryStore) ListEvents(_ context.Context, f models.Filter) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Event, 0)
	for _, e := range s.events {
		if f.Matches(e) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out, nil
}

func (s *InMemoryStore) UpdateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	c := *e
	s.events[e.ID] = &c
	return nil
}

func (s *InMemoryStore) DeleteEvent(_ context.Context, eventID id.TimelineEventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	delete(s.events, eventID)
	delete(s.notes, eventID)
	return nil
}

func (s *InMemoryStore) BulkUpdateStatus(_ context.Context, ids []id.TimelineEventID, status models.Status, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, eventID := range ids {
		if e, ok := s.events[eventID]; ok {
			e.Status = status
			e.UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) BulkDelete(_ context.Context, ids []id.TimelineEventID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, eventID := range ids {
		if _, ok := s.events[eventID]; ok {
			delete(s.events, eventID)
			delete(s.notes, eventID)
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) CreateNote(_ context.Context, n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[n.EventID]; !ok {
		return fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	c := *n
	s.notes[n.EventID] = append(s.notes[n.EventID], &c)
	return nil
}

// ListNotes returns the event's notes, oldest first.
func (s *InMemoryStore) ListNotes(_ context.Context, eventID id.TimelineEventID) ([]*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.events[eventID]; !ok {
		return nil, fmt.Errorf("timeline event not found: %w", sentinel.ErrNotFound)
	}
	out := make([]*models.Note, 0, len(s.notes[eventID]))
	for _, n := range s.notes[eventID] {
		c := *n
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) DeleteNote(_ context.Context, eventID id.TimelineEventID, noteID id.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.notes[eventID]
	for i, n := range notes {
		if n.ID == noteID {
			s.notes[eventID] = append(notes[:i:i], notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note not found: %w", sentinel.ErrNotFound)
}
