// Package metrics defines the Prometheus collectors exported by quotebook.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Outcome labels for authentication metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	AuthAttempts  *prometheus.CounterVec
	GateRejects   *prometheus.CounterVec
	TagsCreated   prometheus.Counter
	TagsOrphaned  prometheus.Counter
	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// Panics if registration fails (following prometheus convention).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotebook_auth_attempts_total",
				Help: "Signup and signin attempts by outcome",
			},
			[]string{"operation", "outcome"},
		),
		GateRejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotebook_gate_rejections_total",
				Help: "Requests rejected by the authorization gate",
			},
			[]string{"reason"},
		),
		TagsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotebook_tags_created_total",
			Help: "Tags created by upsert",
		}),
		TagsOrphaned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotebook_tags_orphan_deleted_total",
			Help: "Tags deleted after their last quote was removed",
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quotebook_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDurations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quotebook_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		m.AuthAttempts,
		m.GateRejects,
		m.TagsCreated,
		m.TagsOrphaned,
		m.HTTPRequests,
		m.HTTPDurations,
	)
	return m
}

// NewRegistry returns a registry preloaded with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RecordAuth counts a signup or signin attempt.
func (m *Metrics) RecordAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(operation, outcome).Inc()
}

// RecordGateRejection counts a request the authorization gate turned away.
func (m *Metrics) RecordGateRejection(reason string) {
	if m == nil {
		return
	}
	m.GateRejects.WithLabelValues(reason).Inc()
}

// RecordTagsCreated adds n newly created tags.
func (m *Metrics) RecordTagsCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TagsCreated.Add(float64(n))
}

// RecordTagsOrphaned adds n tags removed by orphan cleanup.
func (m *Metrics) RecordTagsOrphaned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.TagsOrphaned.Add(float64(n))
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDurations.WithLabelValues(method, route).Observe(duration.Seconds())
}
