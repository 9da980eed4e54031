package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/config"
	"github.com/yukikurage/trip-planner-api/internal/database"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/handlers"
	"github.com/yukikurage/trip-planner-api/internal/logging"
	"github.com/yukikurage/trip-planner-api/internal/middleware"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	apierrors.SetDebug(!cfg.IsProduction())

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Run migrations
	if err := database.MigrateDatabase(db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Revoked tokens live in Redis when configured so every instance sees them
	var denylist auth.Denylist = auth.NewMemoryDenylist()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
		}
		denylist = auth.NewRedisDenylist(client)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, denylist)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)

	userService := services.NewUserService(userRepo, tokens, services.LogResetNotifier{})
	friendService := services.NewFriendService(userRepo, repository.NewFriendRepository(db))
	itineraryService := services.NewItineraryService(itineraryRepo)
	accommodationService := services.NewAccommodationService(repository.NewAccommodationRepository(db), itineraryRepo)
	poiService := services.NewPointOfInterestService(repository.NewPointOfInterestRepository(db), itineraryRepo)

	// Initialize handlers
	router := handlers.Router{
		Tokens:           tokens,
		Limiter:          middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
		Health:           handlers.NewHealthHandler(db),
		Auth:             handlers.NewAuthHandler(userService, tokens, cfg.SecureCookies()),
		Users:            handlers.NewUserHandler(userService, friendService, itineraryService),
		Itineraries:      handlers.NewItineraryHandler(itineraryService),
		Accommodations:   handlers.NewAccommodationHandler(accommodationService),
		PointsOfInterest: handlers.NewPointOfInterestHandler(poiService),
	}.Engine()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server
	go func() {
		logging.Info().Str("addr", server.Addr).Str("driver", cfg.DBDriver).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}
