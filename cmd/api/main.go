package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpAdapter "github.com/lorrc/customer-service-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/customer-service-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/customer-service-backend/internal/adapters/primary/websocket"
	"github.com/lorrc/customer-service-backend/internal/adapters/secondary/mongodb"
	"github.com/lorrc/customer-service-backend/internal/auth"
	"github.com/lorrc/customer-service-backend/internal/config"
	"github.com/lorrc/customer-service-backend/internal/core/services"
	"github.com/lorrc/customer-service-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		AddSource:   cfg.IsDevelopment(),
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Connect to the Document Store
	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("failed to connect to mongodb", "error", err)
		os.Exit(1)
	}
	db := client.Database(cfg.Mongo.Database)
	logger.Info("database connection established", "database", cfg.Mongo.Database)

	// 4. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.App.Name)
	registry := websocket.NewRegistry(logger)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		authRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.AuthRPS,
			BurstSize:         cfg.RateLimit.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	userRepo := mongodb.NewUserRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	faqRepo := mongodb.NewFaqRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)

	// Services (Core)
	authService := services.NewAuthService(userRepo)
	ticketService := services.NewTicketService(ticketRepo)
	messageService := services.NewMessageService(messageRepo, registry)
	faqService := services.NewFaqService(faqRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	seedService := services.NewSeedService(faqRepo, ticketRepo)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	messageHandler := httpAdapter.NewMessageHandler(messageService, errorHandler, logger)
	ticketHandler := httpAdapter.NewTicketHandler(ticketService, messageHandler, errorHandler, logger)
	faqHandler := httpAdapter.NewFaqHandler(faqService, errorHandler, logger)
	feedbackHandler := httpAdapter.NewFeedbackHandler(feedbackService, errorHandler, logger)
	seedHandler := httpAdapter.NewSeedHandler(seedService, errorHandler, logger)
	wsHandler := websocket.NewHandler(registry, cfg.WebSocket, cfg.IsProduction(), logger)
	healthHandler := httpAdapter.NewHealthHandler(mongodb.NewHealthStore(client, db), registry, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Apply general rate limiting if enabled
	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check and metrics endpoints (standard probe paths)
	healthHandler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Get("/", httpAdapter.HandleRoot)

	// Public auth routes with stricter rate limiting
	r.Group(func(r chi.Router) {
		if authRateLimiter != nil {
			r.Use(authRateLimiter.Middleware)
		}
		r.Route("/auth", authHandler.RegisterRoutes)
	})

	r.Route("/tickets", ticketHandler.RegisterRoutes)
	r.Route("/faq", faqHandler.RegisterRoutes)
	r.Route("/feedback", feedbackHandler.RegisterRoutes)
	seedHandler.RegisterRoutes(r)

	// WebSocket route (one live channel per ticket)
	r.Get("/ws/tickets/{ticket_id}", wsHandler.ServeTicketChannel)

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown: stop accepting requests, then close the live
	// channels and release the store connection.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	registry.CloseAll()

	if generalRateLimiter != nil {
		generalRateLimiter.Stop()
	}
	if authRateLimiter != nil {
		authRateLimiter.Stop()
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongodb disconnect error", "error", err)
	}

	logger.Info("server shutdown complete")
}
