package throttle

import (
	"context"
	"sync"
	"time"
)

type attempt struct {
	count     int
	expiresAt time.Time
}

// InMemory is a process-local Throttle. The window starts at the first
// failure and is not extended by later failures, matching the Redis backend.
type InMemory struct {
	mu       sync.Mutex
	cfg      Config
	attempts map[string]*attempt
	now      func() time.Time
}

func NewInMemory(cfg Config) *InMemory {
	return &InMemory{
		cfg:      cfg.withDefaults(),
		attempts: make(map[string]*attempt),
		now:      time.Now,
	}
}

// WithClock overrides the time source; intended for tests.
func (t *InMemory) WithClock(now func() time.Time) *InMemory {
	t.now = now
	return t
}

func (t *InMemory) IsLocked(_ context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := t.live(email)
	return a != nil && a.count >= t.cfg.MaxFailedAttempts, nil
}

func (t *InMemory) RecordFailure(_ context.Context, email string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := t.live(email)
	if a == nil {
		a = &attempt{expiresAt: t.now().Add(t.cfg.Lockout)}
		t.attempts[key(email)] = a
	}
	a.count++
	return a.count >= t.cfg.MaxFailedAttempts, nil
}

func (t *InMemory) Reset(_ context.Context, email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key(email))
	return nil
}

// live returns the unexpired entry for email, pruning it if stale.
// Callers hold t.mu.
func (t *InMemory) live(email string) *attempt {
	k := key(email)
	a, ok := t.attempts[k]
	if !ok {
		return nil
	}
	if !t.now().Before(a.expiresAt) {
		delete(t.attempts, k)
		return nil
	}
	return a
}
