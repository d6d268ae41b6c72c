package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/dev-events", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/dev-events").Observe(0.1)
	m.EventsCreatedTotal.Inc()
	m.EventsDeletedTotal.Inc()
	m.SpeakersAddedTotal.WithLabelValues("api").Add(2)
	m.CacheLookupsTotal.WithLabelValues("hit").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 6)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.EventsCreatedTotal))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SpeakersAddedTotal.WithLabelValues("api")))
}

func TestNewWithRegistry_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)
	assert.Panics(t, func() { NewWithRegistry(reg) })
}

func TestNewNop_IsIndependent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewNop()
		NewNop()
	})
}
