package routes

import (
	"net/http"

	"github.com/fhvi/provider-directory/internal/api/handlers"
	"github.com/fhvi/provider-directory/internal/api/middleware"
	"github.com/fhvi/provider-directory/internal/infrastructure/observability"
)

// Router holds all route handlers.
type Router struct {
	mux *http.ServeMux

	providerHandler *handlers.ProviderHandler
	locationHandler *handlers.LocationHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router.
func NewRouter(
	providerHandler *handlers.ProviderHandler,
	locationHandler *handlers.LocationHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		providerHandler: providerHandler,
		locationHandler: locationHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Directory endpoints
	r.mux.HandleFunc("GET /api/providers", r.providerHandler.ListProviders)
	r.mux.HandleFunc("GET /api/providers/{id}", r.providerHandler.GetProvider)

	// Facet endpoints
	r.mux.HandleFunc("GET /api/facets", r.providerHandler.GetFacets)

	// Location endpoint
	r.mux.HandleFunc("GET /api/location", r.locationHandler.Locate)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// Outside the response cache so replayed hits are compressed and
	// ETag-checked too.
	handler = middleware.ResponseOptimization(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
