package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/zirz1911/global-security-hub/internal/api"
	"github.com/zirz1911/global-security-hub/internal/auth"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/database"
	"github.com/zirz1911/global-security-hub/internal/tasks"
	"github.com/zirz1911/global-security-hub/internal/web"
	"github.com/zirz1911/global-security-hub/pkg/config"
	"github.com/zirz1911/global-security-hub/pkg/queue"
	"github.com/zirz1911/global-security-hub/pkg/util"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting Global Security Hub server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis; the site serves uncached without it
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis, page caching disabled", "error", err)
		redisClient = nil
	}

	// Initialize Asynq client for background re-warm jobs
	var (
		asynqClient *asynq.Client
		taskClient  *tasks.Client
	)
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
		taskClient = tasks.NewClient(asynqClient)
	}

	// Initialize services
	sessions := auth.NewSessionService(cfg.Session.Secret, cfg.Session.Expiry())
	authService := auth.NewService(db, sessions)
	pageCache := cache.New(redisClient, logger, cfg.Cache.HomeTTL(), cfg.Cache.DetailTTL())

	// Load templates
	templates, err := web.LoadTemplates()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Get static file system
	staticFS, err := web.GetStaticFS()
	if err != nil {
		logger.Error("failed to get static fs", "error", err)
		os.Exit(1)
	}

	// Create router
	routerCfg := api.RouterConfig{
		DB:            db,
		Redis:         redisClient,
		Logger:        logger,
		Sessions:      sessions,
		AuthService:   authService,
		PageCache:     pageCache,
		Templates:     templates,
		StaticFS:      staticFS,
		RateLimitReqs: cfg.RateLimit.Requests,
		RateLimitSecs: cfg.RateLimit.WindowSeconds,
	}
	if taskClient != nil {
		routerCfg.Revalidator = taskClient
	}
	router := api.NewRouter(routerCfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close Asynq client
	if asynqClient != nil {
		asynqClient.Close()
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
