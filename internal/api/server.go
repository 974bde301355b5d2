// Package api provides the HTTP API server and handlers for quotebook.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotebook/quotebook-server/internal/metrics"
	"github.com/quotebook/quotebook-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	// Version is reported in the OpenAPI document.
	Version string
	// AllowedOrigins configures CORS. Empty means "*".
	AllowedOrigins []string
	// Gatherer, when set, is exposed at /metrics.
	Gatherer prometheus.Gatherer
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     store.Store
	services  *Services
	gate      *Gate
	metrics   *metrics.Metrics
	opts      Options
	router    *chi.Mux
	api       huma.API // public operations, owns /openapi and /docs
	protected huma.API // operations behind the gate
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, gate *Gate, m *metrics.Metrics, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		store:    st,
		services: services,
		gate:     gate,
		metrics:  m,
		opts:     opts,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupAPIs()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger, s.metrics))
	s.router.Use(middleware.Recoverer)
	// The gate answers preflight requests on protected routes itself.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     s.opts.AllowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Authorization", "Content-Type"},
		ExposedHeaders:     []string{"X-Request-Id"},
		MaxAge:             300,
		OptionsPassthrough: true,
	}))

	s.router.NotFound(s.handleNotFound)
	s.router.MethodNotAllowed(s.handleNotFound)
}

// setupAPIs creates the public huma API on the root router and a second one
// inside a gated route group. Both write to the same OpenAPI document.
func (s *Server) setupAPIs() {
	humaConfig := huma.DefaultConfig("Quotebook API", s.opts.Version)
	humaConfig.Info.Description = "Personal quote notebook with tagging."
	// Response bodies are returned exactly as declared, without a $schema link.
	humaConfig.CreateHooks = nil
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	RegisterErrorHandler()
	s.api = humachi.New(s.router, humaConfig)

	// cors passes preflight through, so public routes answer it here.
	s.router.Options("/auth/signup", noContent)
	s.router.Options("/auth/signin", noContent)

	protectedConfig := humaConfig
	protectedConfig.OpenAPIPath = ""
	protectedConfig.DocsPath = ""
	protectedConfig.SchemasPath = ""

	s.router.Group(func(r chi.Router) {
		r.Use(s.gate.Middleware)
		// Registered so preflight requests reach the gate instead of the 404 handler.
		r.Options("/quotes", noContent)
		r.Options("/quotes/{id}", noContent)
		s.protected = humachi.New(r, protectedConfig)
	})
}

func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerQuoteRoutes()

	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
