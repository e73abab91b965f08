package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fhvi/provider-directory/internal/adapters/cache"
	"github.com/fhvi/provider-directory/internal/adapters/dataset"
	"github.com/fhvi/provider-directory/internal/adapters/providers/geolocation"
	"github.com/fhvi/provider-directory/internal/api/handlers"
	"github.com/fhvi/provider-directory/internal/api/middleware"
	"github.com/fhvi/provider-directory/internal/api/routes"
	"github.com/fhvi/provider-directory/internal/application/services"
	"github.com/fhvi/provider-directory/internal/domain/providers"
	"github.com/fhvi/provider-directory/internal/infrastructure/clients/redis"
	"github.com/fhvi/provider-directory/internal/infrastructure/observability"
	"github.com/fhvi/provider-directory/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	log.Info().
		Str("version", cfg.OTEL.ServiceVersion).
		Str("env", cfg.Server.Env).
		Msg("starting provider directory")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is opt-in; without an endpoint the global providers stay
	// no-ops and the instrumented code paths cost nothing.
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// The dataset is the only required external input. Load it once; every
	// query runs against the resident records.
	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("failed to load provider dataset")
	}
	repo := dataset.NewRepository(ds)
	log.Info().Int("providers", len(ds.Data)).Msg("provider dataset loaded")

	// Redis is optional; without it the service runs uncached.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without response cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis response cache initialized")
	}

	var locationProvider providers.LocationProvider
	switch cfg.Geolocation.Provider {
	case "ipapi":
		locationProvider = geolocation.NewIPAPIProviderWithOptions(cacheProvider, cfg.Geolocation.BaseURL, nil)
		log.Info().Msg("using IP geolocation provider")
	default:
		locationProvider = geolocation.NewMockLocationProvider()
		log.Info().Msg("using mock location provider")
	}

	queryService := services.NewProviderQueryService(
		repo,
		services.NewSearchService(),
		services.NewFilterService(services.NewOpenHoursEvaluator()),
		services.NewFacetService(),
	)

	providerHandler := handlers.NewProviderHandler(queryService, metrics)
	locationHandler := handlers.NewLocationHandler(locationProvider)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(providerHandler, locationHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
