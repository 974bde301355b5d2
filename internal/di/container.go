// Package di provides dependency injection configuration for the quotebook server.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/config"
	"github.com/quotebook/quotebook-server/internal/di/providers"
	"github.com/quotebook/quotebook-server/internal/logger"
	"github.com/quotebook/quotebook-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideCredentialStore)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideTagReconciler)
	do.Provide(injector, providers.ProvideQuoteService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes every service in dependency order. A missing API_SECRET
// or an unreachable database fails here, before the server accepts requests.
func Bootstrap(injector *do.RootScope) error {
	steps := []struct {
		name   string
		invoke func() error
	}{
		{"config", invoke[*config.Config](injector)},
		{"logger", invoke[*logger.Logger](injector)},
		{"metrics", invoke[*providers.MetricsHandle](injector)},
		{"store", invoke[*providers.StoreHandle](injector)},
		{"token service", invoke[*auth.TokenService](injector)},
		{"credential store", invoke[*service.CredentialStore](injector)},
		{"auth service", invoke[*service.AuthService](injector)},
		{"tag reconciler", invoke[*service.TagReconciler](injector)},
		{"quote service", invoke[*service.QuoteService](injector)},
		{"http server", invoke[*providers.HTTPServerHandle](injector)},
	}

	for _, step := range steps {
		if err := step.invoke(); err != nil {
			return fmt.Errorf("initialize %s: %w", step.name, err)
		}
	}
	return nil
}

func invoke[T any](injector do.Injector) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
