package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/metrics"
)

// MetricsHandle pairs the collectors with the registry they are exposed from.
type MetricsHandle struct {
	*metrics.Metrics
	Registry *prometheus.Registry
}

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*MetricsHandle, error) {
	reg := metrics.NewRegistry()
	return &MetricsHandle{Metrics: metrics.New(reg), Registry: reg}, nil
}
