// Package api provides the HTTP API server and handlers for the catalog front-end.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Abddev09/usat-library/internal/http/response"
	"github.com/Abddev09/usat-library/internal/metrics"
	"github.com/Abddev09/usat-library/internal/store"
)

// Version is the API contract version reported in envelopes and OpenAPI.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    *store.Store
	services *Services
	metrics  *metrics.Metrics
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger

	// eventsHandler streams SSE outside of huma's request model.
	eventsHandler http.Handler

	rateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, eventsHandler http.Handler, m *metrics.Metrics, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("USAT Library API", Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s := &Server{
		store:         st,
		services:      services,
		metrics:       m,
		router:        router,
		logger:        logger,
		eventsHandler: eventsHandler,
		rateLimiter:   NewRateLimiter(300, time.Minute, 50),
	}

	// chi requires all middleware to be registered before any route;
	// humachi.New registers huma's OpenAPI/docs routes on the router,
	// so the middleware stack must be in place first.
	s.setupMiddleware()

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerTaxonomyRoutes()
	s.registerCartRoutes()
	s.registerSessionRoutes()
	s.registerProfileRoutes()
	s.registerShowcaseRoutes()

	// Prometheus metrics on the service's own registry.
	if s.metrics != nil && s.metrics.Registry != nil {
		s.router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	// SSE stream lives outside huma: it writes incrementally.
	if s.eventsHandler != nil {
		s.router.Get("/api/v1/events", s.eventsHandler.ServeHTTP)
	}

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
}
