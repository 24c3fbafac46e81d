package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// InMemoryStore keeps admins in memory for development and tests.
// Returned admins are copies; callers may mutate them freely.
type InMemoryStore struct {
	mu      sync.RWMutex
	admins  map[id.AdminID]*models.Admin
	byEmail map[string]id.AdminID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		admins:  make(map[id.AdminID]*models.Admin),
		byEmail: make(map[string]id.AdminID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, a *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := models.NormalizeEmail(a.Email)
	if _, taken := s.byEmail[email]; taken {
		return fmt.Errorf("email %q: %w", email, sentinel.ErrConflict)
	}
	c := clone(a)
	c.Email = email
	s.admins[c.ID] = c
	s.byEmail[email] = c.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, adminID id.AdminID) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[adminID]
	if !ok {
		return nil, fmt.Errorf("admin not found: %w", sentinel.ErrNotFound)
	}
	return clone(a), nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adminID, ok := s.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, fmt.Errorf("admin not found: %w", sentinel.ErrNotFound)
	}
	return clone(s.admins[adminID]), nil
}

// List returns matching admins ordered by creation time, newest first.
func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		if f.matches(a) {
			out = append(out, clone(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, a *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.admins[a.ID]
	if !ok {
		return fmt.Errorf("admin not found: %w", sentinel.ErrNotFound)
	}
	email := models.NormalizeEmail(a.Email)
	if owner, taken := s.byEmail[email]; taken && owner != a.ID {
		return fmt.Errorf("email %q: %w", email, sentinel.ErrConflict)
	}
	delete(s.byEmail, existing.Email)
	c := clone(a)
	c.Email = email
	s.admins[a.ID] = c
	s.byEmail[email] = a.ID
	return nil
}

func (s *InMemoryStore) RecordLogin(_ context.Context, adminID id.AdminID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[adminID]
	if !ok {
		return fmt.Errorf("admin not found: %w", sentinel.ErrNotFound)
	}
	a.LastLogin = &at
	return nil
}

func (s *InMemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.admins)}
	for _, a := range s.admins {
		if a.IsActive {
			st.Active++
		}
	}
	return st, nil
}
