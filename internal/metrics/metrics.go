// Package metrics provides Prometheus metrics for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// HTTP request metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Matching metrics
	MatchQueriesTotal prometheus.Counter
	MatchResultsTotal prometheus.Counter
	IndexedStories    prometheus.Gauge

	// Safety metrics
	ModerationsTotal    *prometheus.CounterVec
	GateDropsTotal      prometheus.Counter
	CrisisWarningsTotal prometheus.Counter

	// Conversation metrics
	ChatTurnsTotal       prometheus.Counter
	ChatSuggestionsTotal prometheus.Counter
	ActiveSessions       prometheus.Gauge
}

// New creates and registers all metrics on the given registerer. Pass
// a fresh registry in tests to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beenthere_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beenthere_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.HTTPRequestsInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "beenthere_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	m.MatchQueriesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_match_queries_total",
			Help: "Total number of similarity queries served",
		},
	)

	m.MatchResultsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_match_results_total",
			Help: "Total number of match results returned",
		},
	)

	m.IndexedStories = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "beenthere_indexed_stories",
			Help: "Number of stories in the loaded index",
		},
	)

	m.ModerationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beenthere_moderations_total",
			Help: "Total number of moderation verdicts",
		},
		[]string{"verdict"},
	)

	m.GateDropsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_gate_drops_total",
			Help: "Total number of match candidates removed by the safety gate",
		},
	)

	m.CrisisWarningsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_crisis_warnings_total",
			Help: "Total number of crisis warnings raised for user queries",
		},
	)

	m.ChatTurnsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_chat_turns_total",
			Help: "Total number of chat turns processed",
		},
	)

	m.ChatSuggestionsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "beenthere_chat_suggestions_total",
			Help: "Total number of story suggestions attached to chat replies",
		},
	)

	m.ActiveSessions = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "beenthere_active_sessions",
			Help: "Number of conversation sessions held in memory",
		},
	)

	return m
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(route, method, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordModeration records one moderation verdict.
func (m *Metrics) RecordModeration(risky bool) {
	verdict := "safe"
	if risky {
		verdict = "risky"
	}
	m.ModerationsTotal.WithLabelValues(verdict).Inc()
}
