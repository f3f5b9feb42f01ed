package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nohlan/stayhub/internal/adapters/database"
	"github.com/nohlan/stayhub/internal/adapters/events"
	"github.com/nohlan/stayhub/internal/adapters/memory"
	"github.com/nohlan/stayhub/internal/api/handlers"
	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/api/routes"
	"github.com/nohlan/stayhub/internal/application/services"
	"github.com/nohlan/stayhub/internal/domain/providers"
	"github.com/nohlan/stayhub/internal/domain/repositories"
	"github.com/nohlan/stayhub/internal/infrastructure/clients/postgres"
	"github.com/nohlan/stayhub/internal/infrastructure/clients/redis"
	"github.com/nohlan/stayhub/internal/infrastructure/observability"
	"github.com/nohlan/stayhub/internal/infrastructure/security"
	"github.com/nohlan/stayhub/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize repositories on the configured storage backend
	var (
		userRepo    repositories.UserRepository
		amenityRepo repositories.AmenityRepository
		placeRepo   repositories.PlaceRepository
		reviewRepo  repositories.ReviewRepository
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
		}
		defer pgClient.Close()

		if err := pgClient.Migrate(&cfg.Database); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Println("PostgreSQL client initialized successfully")

		userRepo = database.NewUserAdapter(pgClient)
		amenityRepo = database.NewAmenityAdapter(pgClient)
		placeRepo = database.NewPlaceAdapter(pgClient)
		reviewRepo = database.NewReviewAdapter(pgClient)

	default:
		log.Println("Using in-memory storage backend")
		userRepo = memory.NewUserRepository()
		amenityRepo = memory.NewAmenityRepository()
		placeRepo = memory.NewPlaceRepository()
		reviewRepo = memory.NewReviewRepository()
	}

	// Initialize event bus, Redis-backed when available
	var bus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		bus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		bus = events.NewRedisEventBus(redisClient)
		log.Println("Redis event bus initialized successfully")
	}
	defer bus.Close()

	// Initialize security components
	hasher := security.NewBcryptHasher()
	tokens, err := security.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Initialize services
	userService := services.NewUserService(userRepo, placeRepo, reviewRepo, hasher, bus)
	amenityService := services.NewAmenityService(amenityRepo, bus)
	placeService := services.NewPlaceService(placeRepo, userRepo, amenityRepo, reviewRepo, bus)
	reviewService := services.NewReviewService(reviewRepo, placeRepo, userRepo, bus)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	amenityHandler := handlers.NewAmenityHandler(amenityService)
	placeHandler := handlers.NewPlaceHandler(placeService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		userHandler,
		amenityHandler,
		placeHandler,
		reviewHandler,
		middleware.NewAuth(tokens),
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
