package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/quotebook/quotebook-server/internal/api"
	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/config"
	"github.com/quotebook/quotebook-server/internal/logger"
	"github.com/quotebook/quotebook-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	log *logger.Logger
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.log.Info("Shutting down HTTP server...")
	if err := h.Server.Shutdown(ctx); err != nil {
		h.log.WithError(err).Error("HTTP server shutdown failed")
		return err
	}
	return nil
}

// ProvideHTTPServer builds the API handler and starts serving in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:   do.MustInvoke[*service.AuthService](i),
		Quotes: do.MustInvoke[*service.QuoteService](i),
	}

	opts := api.Options{
		Version:        apiVersion,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if cfg.Metrics.Enabled {
		opts.Gatherer = metricsHandle.Registry
	}

	gate := api.NewGate(tokenService, metricsHandle.Metrics, log.Logger)
	handler := api.NewServer(storeHandle.Store, services, gate, metricsHandle.Metrics, opts, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	return &HTTPServerHandle{Server: srv, log: log}, nil
}
