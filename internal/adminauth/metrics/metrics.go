package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the counters below.
const (
	OutcomeValid     = "valid"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
	OutcomeAllowed   = "allowed"
	OutcomeForbidden = "forbidden"
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeLocked    = "locked"
)

// Metrics holds Prometheus collectors for admin session handling.
type Metrics struct {
	SessionValidations    *prometheus.CounterVec
	AuthorizationDecision *prometheus.CounterVec
	Logins                *prometheus.CounterVec
	SessionsInvalidated   *prometheus.CounterVec
	CleanupRuns           *prometheus.CounterVec
	ValidationDuration    prometheus.Histogram
}

// New registers the collectors with reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		SessionValidations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_session_validations_total",
			Help: "Session validations by outcome",
		}, []string{"outcome"}),
		AuthorizationDecision: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_authorization_decisions_total",
			Help: "Authorization guard decisions by outcome",
		}, []string{"outcome"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		SessionsInvalidated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_sessions_invalidated_total",
			Help: "Sessions marked inactive, by reason",
		}, []string{"reason"}),
		CleanupRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_session_cleanup_runs_total",
			Help: "Expired-session cleanup runs by outcome",
		}, []string{"outcome"}),
		ValidationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "visa_admin_session_validation_duration_seconds",
			Help:    "Time spent validating a session token",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}),
	}
}

func (m *Metrics) IncValidation(outcome string) {
	if m == nil {
		return
	}
	m.SessionValidations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncAuthorization(outcome string) {
	if m == nil {
		return
	}
	m.AuthorizationDecision.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddInvalidated(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsInvalidated.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) IncCleanupRun(outcome string) {
	if m == nil {
		return
	}
	m.CleanupRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveValidation(seconds float64) {
	if m == nil {
		return
	}
	m.ValidationDuration.Observe(seconds)
}
