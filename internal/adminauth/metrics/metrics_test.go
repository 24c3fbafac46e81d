package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncValidation(OutcomeValid)
	m.IncValidation(OutcomeValid)
	m.IncAuthorization(OutcomeForbidden)
	m.IncLogin(OutcomeLocked)
	m.AddInvalidated("expired", 3)
	m.AddInvalidated("expired", 0)
	m.IncCleanupRun(OutcomeSuccess)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionValidations.WithLabelValues(OutcomeValid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthorizationDecision.WithLabelValues(OutcomeForbidden)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(OutcomeLocked)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsInvalidated.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CleanupRuns.WithLabelValues(OutcomeSuccess)))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncValidation(OutcomeValid)
		m.IncAuthorization(OutcomeAllowed)
		m.IncLogin(OutcomeSuccess)
		m.AddInvalidated("logout", 1)
		m.IncCleanupRun(OutcomeFailure)
		m.ObserveValidation(0.01)
	})
}
