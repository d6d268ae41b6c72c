package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	// method, path, status_code
	HTTPRequestsTotal *prometheus.CounterVec
	// method, path
	HTTPRequestDuration *prometheus.HistogramVec

	EventsCreatedTotal prometheus.Counter
	EventsDeletedTotal prometheus.Counter
	// source: api, sessionize
	SpeakersAddedTotal *prometheus.CounterVec
	// result: hit, miss, error
	CacheLookupsTotal *prometheus.CounterVec
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		EventsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dev_events_created_total",
			Help: "Total number of events created",
		}),
		EventsDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dev_events_soft_deleted_total",
			Help: "Total number of successful soft-delete calls",
		}),
		SpeakersAddedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dev_event_speakers_added_total",
				Help: "Total number of speakers added to events",
			},
			[]string{"source"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dev_event_cache_lookups_total",
				Help: "Event cache lookups by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.EventsCreatedTotal,
		m.EventsDeletedTotal,
		m.SpeakersAddedTotal,
		m.CacheLookupsTotal,
	)

	return m
}

// NewNop returns collectors registered on a throwaway registry, for tests and tools.
func NewNop() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}
