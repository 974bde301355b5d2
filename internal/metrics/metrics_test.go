package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordAuth("signin", OutcomeRejected)
	m.RecordGateRejection("missing_header")
	m.RecordTagsCreated(2)
	m.RecordTagsOrphaned(1)
	m.RecordHTTPRequest("GET", "/quotes", 200, 15*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"quotebook_auth_attempts_total",
		"quotebook_gate_rejections_total",
		"quotebook_tags_created_total",
		"quotebook_tags_orphan_deleted_total",
		"quotebook_http_requests_total",
		"quotebook_http_request_duration_seconds",
	} {
		assert.True(t, names[want], "missing %s", want)
	}
}

func TestRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordAuth("signup", OutcomeSuccess)
	m.RecordAuth("signup", OutcomeSuccess)
	m.RecordTagsCreated(3)
	m.RecordTagsCreated(0)
	m.RecordTagsOrphaned(2)
	m.RecordHTTPRequest("DELETE", "/quotes/{id}", 401, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("signup", OutcomeSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TagsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TagsOrphaned))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("DELETE", "/quotes/{id}", "401")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordAuth("signin", OutcomeSuccess)
		m.RecordGateRejection("invalid_token")
		m.RecordTagsCreated(1)
		m.RecordTagsOrphaned(1)
		m.RecordHTTPRequest("GET", "/", 200, time.Second)
	})
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
