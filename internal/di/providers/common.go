package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// apiVersion is reported in the OpenAPI document.
	apiVersion = "1.0.0"
)
