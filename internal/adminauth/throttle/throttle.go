// Package throttle counts failed logins per email and locks the account
// out for a fixed window once the limit is reached.
package throttle

import (
	"context"
	"time"
)

// Config controls when an email is locked out.
type Config struct {
	MaxFailedAttempts int
	Lockout           time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = 5
	}
	if c.Lockout <= 0 {
		c.Lockout = 15 * time.Minute
	}
	return c
}

// Throttle is implemented by the in-memory and Redis backends.
type Throttle interface {
	// IsLocked reports whether email has reached the failure limit within the window.
	IsLocked(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failure and reports whether email is now locked.
	RecordFailure(ctx context.Context, email string) (bool, error)
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, email string) error
}

func key(email string) string {
	return "login_failures:" + email
}
