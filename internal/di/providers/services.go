package providers

import (
	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/logger"
	"github.com/quotebook/quotebook-server/internal/service"
)

// ProvideCredentialStore provides the user credential store.
func ProvideCredentialStore(i do.Injector) (*service.CredentialStore, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCredentialStore(storeHandle.Store, log.Logger), nil
}

// ProvideAuthService provides the signup and signin service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	credentials := do.MustInvoke[*service.CredentialStore](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(credentials, tokenService, metricsHandle.Metrics, log.Logger), nil
}

// ProvideTagReconciler provides the tag upsert and cleanup logic.
func ProvideTagReconciler(i do.Injector) (*service.TagReconciler, error) {
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagReconciler(metricsHandle.Metrics, log.Logger), nil
}

// ProvideQuoteService provides the quote service.
func ProvideQuoteService(i do.Injector) (*service.QuoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tags := do.MustInvoke[*service.TagReconciler](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuoteService(storeHandle.Store, tags, log.Logger), nil
}
