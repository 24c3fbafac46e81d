package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in memory for development and tests. The
// token lookup joins against an AdminReader to mirror the SQL LEFT JOIN.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*models.Session
	byToken  map[string]id.SessionID
	admins   AdminReader
}

func NewInMemory(admins AdminReader) *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[id.SessionID]*models.Session),
		byToken:  make(map[string]id.SessionID),
		admins:   admins,
	}
}

func (s *InMemoryStore) Create(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byToken[sess.Token]; taken {
		return fmt.Errorf("session token: %w", sentinel.ErrConflict)
	}
	c := *sess
	s.sessions[c.ID] = &c
	s.byToken[c.Token] = c.ID
	return nil
}

func (s *InMemoryStore) FindActiveByToken(ctx context.Context, token string) (*models.SessionWithAdmin, error) {
	s.mu.RLock()
	sid, ok := s.byToken[token]
	var sess models.Session
	if ok {
		sess = *s.sessions[sid]
	}
	s.mu.RUnlock()

	if !ok || !sess.IsActive {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}

	out := &models.SessionWithAdmin{Session: sess}
	if s.admins == nil {
		return out, nil
	}
	a, err := s.admins.FindByID(ctx, sess.AdminID)
	switch {
	case err == nil:
		out.Admin = a
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		return nil, fmt.Errorf("join admin: %w", err)
	}
	return out, nil
}

// FindByID returns a session regardless of state.
func (s *InMemoryStore) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %w", sentinel.ErrNotFound)
	}
	c := *sess
	return &c, nil
}

func (s *InMemoryStore) InvalidateSession(_ context.Context, sessionID id.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.IsActive = false
	}
	return nil
}

func (s *InMemoryStore) InvalidateByToken(_ context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sid, ok := s.byToken[token]
	if !ok || !s.sessions[sid].IsActive {
		return 0, nil
	}
	s.sessions[sid].IsActive = false
	return 1, nil
}

func (s *InMemoryStore) InvalidateByAdmin(_ context.Context, adminID id.AdminID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.AdminID == adminID && sess.IsActive {
			sess.IsActive = false
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) TouchActivity(_ context.Context, token string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sid, ok := s.byToken[token]; ok && s.sessions[sid].IsActive {
		s.sessions[sid].LastActivity = at
	}
	return nil
}

// InvalidateExpired deactivates every active session whose expiry is before now.
func (s *InMemoryStore) InvalidateExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.IsActive && sess.IsExpired(now) {
			sess.IsActive = false
			n++
		}
	}
	return n, nil
}

// CountActive counts active, unexpired sessions.
func (s *InMemoryStore) CountActive(_ context.Context, now time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.IsActive && !sess.IsExpired(now) {
			n++
		}
	}
	return n, nil
}
