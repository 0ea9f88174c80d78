package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BradenHooton/refusebot/internal/background"
	"github.com/BradenHooton/refusebot/internal/config"
	"github.com/BradenHooton/refusebot/internal/game"
	"github.com/BradenHooton/refusebot/internal/handlers"
	"github.com/BradenHooton/refusebot/internal/llm"
	middlewareCustom "github.com/BradenHooton/refusebot/internal/middleware"
	"github.com/BradenHooton/refusebot/internal/repositories"
	"github.com/BradenHooton/refusebot/internal/routes"
	"github.com/BradenHooton/refusebot/internal/services"
	"github.com/BradenHooton/refusebot/internal/store"
	pkghttp "github.com/BradenHooton/refusebot/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize the key-value store
	kv, err := store.NewStore(&cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer kv.Close()

	// Initialize repositories
	attemptRepo := repositories.NewAttemptRepository(kv, cfg.Game.AttemptTTL)
	bountyRepo := repositories.NewBountyRepository(kv)
	rateLimitRepo := repositories.NewRateLimitRepository(kv, cfg.Game.RateLimitWindow)

	// Initialize generative backend
	llmCtx, llmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	backend, err := llm.NewClient(llmCtx, &cfg.LLM, logger)
	llmCancel()
	if err != nil {
		logger.Error("failed to initialize generative backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer backend.Close()

	// Initialize leaderboard refresher
	refresher := background.NewLeaderboardRefresher(
		attemptRepo,
		cfg.Game.LeaderboardSize,
		cfg.Game.LeaderboardRefresh,
		logger,
	)

	// Initialize services
	matcher := game.NewMatcher(cfg.Game.SecretPhraseHash, logger)
	chatService := services.NewChatService(attemptRepo, bountyRepo, matcher, backend, logger)
	rateLimitService := services.NewRateLimitService(rateLimitRepo, cfg.Game.RateLimitMax, logger)
	statusService := services.NewStatusService(
		bountyRepo,
		attemptRepo,
		refresher,
		cfg.Game.BountyAmount,
		cfg.Game.BountyCurrency,
		logger,
	)

	// Initialize handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	chatHandler := handlers.NewChatHandler(chatService, rateLimitService, ipConfig)
	statusHandler := handlers.NewStatusHandler(statusService)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	// Register routes
	burstConfig := middlewareCustom.BurstGuardConfig{RequestsPerMinute: cfg.Server.BurstPerMinute}
	routes.RegisterRoutes(router, chatHandler, statusHandler, burstConfig)

	// Health check with store
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := kv.HealthCheck(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","store":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","store":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start leaderboard refresh task
	refreshCtx, refreshCancel := context.WithCancel(context.Background())
	defer refreshCancel()

	go refresher.Start(refreshCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	refreshCancel()
	refresher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
