// Package health serves the liveness, readiness and status probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const checkTimeout = 2 * time.Second

// CheckFunc returns nil when the dependency is healthy.
type CheckFunc func(ctx context.Context) error

type Handler struct {
	started     time.Time
	environment string
	logger      *slog.Logger

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func New(environment string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		started:     time.Now(),
		environment: environment,
		logger:      logger,
		checks:      make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named dependency to the readiness probe. Registering
// the same name twice replaces the earlier check.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every check in parallel and answers 503 if any fail.
// The body only says "down"; the cause goes to the log.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.mu.RLock()
	results := make(map[string]string, len(h.checks))
	var (
		resMu sync.Mutex
		g     errgroup.Group
	)
	for name, check := range h.checks {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			state := "up"
			if err := check(cctx); err != nil {
				h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
				state = "down"
			}
			resMu.Lock()
			results[name] = state
			resMu.Unlock()
			return nil
		})
	}
	h.mu.RUnlock()
	_ = g.Wait()

	resp := ReadinessResponse{Status: "ready", Checks: results}
	status := http.StatusOK
	for _, state := range results {
		if state != "up" {
			resp.Status = "not_ready"
			status = http.StatusServiceUnavailable
			break
		}
	}
	httputil.WriteJSON(w, status, resp)
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
