package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/zirz1911/global-security-hub/internal/api/handlers"
	"github.com/zirz1911/global-security-hub/internal/cache"
	"github.com/zirz1911/global-security-hub/internal/database"
	"github.com/zirz1911/global-security-hub/internal/directory"
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

	logger.Info("starting Global Security Hub worker")

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The worker writes rendered pages back to the cache, so Redis is
	// required here, unlike in the server.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	// Build the same renderer the server uses so re-warmed pages match
	// what the request path serves.
	templates, err := web.LoadTemplates()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	pageCache := cache.New(redisClient, logger, cfg.Cache.HomeTTL(), cfg.Cache.DetailTTL())
	store := directory.NewStore(db)
	renderer := handlers.NewPageHandler(store, pageCache, templates, logger)

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, 10)

	// Register task handlers
	handler := tasks.NewHandler(renderer, pageCache, logger)
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Schedule the periodic home page refresh
	if err := util.ValidateCronExpr(cfg.Cache.RefreshCron); err != nil {
		logger.Error("invalid refresh cron expression", "expr", cfg.Cache.RefreshCron, "error", err)
		os.Exit(1)
	}
	taskClient := tasks.NewClient(queue.NewClient(&cfg.Redis))
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Cache.RefreshCron, func() {
		if err := taskClient.EnqueueSchedulerTick(); err != nil {
			logger.Error("failed to enqueue scheduled refresh", "error", err)
		}
	}); err != nil {
		logger.Error("failed to schedule refresh", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	if next, err := util.NextCronTime(cfg.Cache.RefreshCron, time.Now()); err == nil {
		logger.Info("home page refresh scheduled", "next_run", next)
	}

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		scheduler.Stop()
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...",
		"refresh_cron", cfg.Cache.RefreshCron,
	)

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
	}

	// Wait for context cancellation
	<-ctx.Done()

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}
