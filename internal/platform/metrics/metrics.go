// Package metrics holds the back-office business counters shared by the
// collaborator modules (admins, timeline, feedback, checklist).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AdminsCreated     prometheus.Counter
	AdminsDeactivated prometheus.Counter
	TimelineMutations *prometheus.CounterVec
	FeedbackSubmitted prometheus.Counter
	FeedbackModerated *prometheus.CounterVec
	ChecklistChanges  *prometheus.CounterVec
}

// New registers the counters with reg; nil means the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		AdminsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "visa_admin_admins_created_total",
			Help: "Total number of admin accounts created",
		}),
		AdminsDeactivated: f.NewCounter(prometheus.CounterOpts{
			Name: "visa_admin_admins_deactivated_total",
			Help: "Total number of admin accounts deactivated",
		}),
		TimelineMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_timeline_mutations_total",
			Help: "Timeline event writes by operation",
		}, []string{"operation"}),
		FeedbackSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "visa_admin_feedback_submitted_total",
			Help: "Public feedback submissions",
		}),
		FeedbackModerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_feedback_moderated_total",
			Help: "Feedback moderation decisions by resulting status",
		}, []string{"status"}),
		ChecklistChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visa_admin_checklist_changes_total",
			Help: "Checklist item writes by operation",
		}, []string{"operation"}),
	}
}

// The helpers below accept a nil receiver so services can run without metrics.

func (m *Metrics) IncAdminsCreated() {
	if m != nil {
		m.AdminsCreated.Inc()
	}
}

func (m *Metrics) IncAdminsDeactivated() {
	if m != nil {
		m.AdminsDeactivated.Inc()
	}
}

func (m *Metrics) AddTimelineMutations(op string, n int) {
	if m != nil && n > 0 {
		m.TimelineMutations.WithLabelValues(op).Add(float64(n))
	}
}

func (m *Metrics) IncFeedbackSubmitted() {
	if m != nil {
		m.FeedbackSubmitted.Inc()
	}
}

func (m *Metrics) IncFeedbackModerated(status string) {
	if m != nil {
		m.FeedbackModerated.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncChecklistChange(op string) {
	if m != nil {
		m.ChecklistChanges.WithLabelValues(op).Inc()
	}
}
