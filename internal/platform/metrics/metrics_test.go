package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncAdminsCreated()
		m.AddTimelineMutations("create", 1)
		m.IncFeedbackModerated("approved")
	})
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncAdminsCreated()
	m.AddTimelineMutations("bulk_delete", 3)
	m.AddTimelineMutations("bulk_delete", 0)

	assert.InDelta(t, 1, testutil.ToFloat64(m.AdminsCreated), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.TimelineMutations.WithLabelValues("bulk_delete")), 0)
}
