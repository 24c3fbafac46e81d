// Package cleanup periodically marks expired admin sessions inactive.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

const defaultSchedule = "@every 15m"

// SessionCleaner is satisfied by the admin auth service.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) int
}

type Worker struct {
	cleaner  SessionCleaner
	schedule string
	logger   *slog.Logger
}

type Option func(*Worker)

// WithSchedule sets a cron spec such as "@every 15m" or "*/10 * * * *".
func WithSchedule(spec string) Option {
	return func(w *Worker) {
		if spec != "" {
			w.schedule = spec
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(cleaner SessionCleaner, opts ...Option) (*Worker, error) {
	if cleaner == nil {
		return nil, errors.New("session cleaner is required")
	}
	w := &Worker{
		cleaner:  cleaner,
		schedule: defaultSchedule,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if _, err := cron.ParseStandard(w.schedule); err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", w.schedule, err)
	}
	return w, nil
}

// Start runs one cleanup immediately, then on the schedule until ctx is
// cancelled. An in-flight run finishes before Start returns.
func (w *Worker) Start(ctx context.Context) error {
	w.RunOnce(ctx)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule session cleanup: %w", err)
	}
	c.Start()
	w.logger.InfoContext(ctx, "session cleanup scheduled", "schedule", w.schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// RunOnce performs a single cleanup pass and returns the number of sessions invalidated.
func (w *Worker) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	return w.cleaner.CleanupExpiredSessions(ctx)
}
