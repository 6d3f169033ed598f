package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "adpacer/internal/adapter/http"
	"adpacer/internal/adapter/postgres"
	"adpacer/internal/adapter/scheduler"
	"adpacer/internal/adapter/usecase"
	"adpacer/internal/config"
	"adpacer/internal/db"

	"github.com/bsm/redislock"
)

// main is the entry point of the adpacer service. It loads configuration,
// optionally runs database migrations, initializes the database pool and
// repositories, then starts the sweep scheduler and the HTTP server. On
// receiving a termination signal it gracefully shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		os.Exit(exitCode)
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.NewLogger(os.Stdout)

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		return
	}
	defer pool.Close()

	// Redis only backs the sweep leader lock, so a missing Redis degrades to
	// unlocked sweeps instead of refusing to start.
	var locker *redislock.Client
	if cfg.Redis.Addr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, sweeps will run unlocked", slog.Any("error", err))
		} else {
			defer rdb.Close()
			locker = redislock.New(rdb)
		}
	}

	repo := postgres.NewCampaignRepository(pool)
	svc := usecase.NewCampaignUseCase(repo, logger)

	if cfg.Sweeps.Enabled {
		sched, err := scheduler.New(svc, locker, logger, cfg.Sweeps)
		if err != nil {
			logger.Error("scheduler configuration error", slog.Any("error", err))
			return
		}
		go sched.Run(ctx)
	}

	handler := httpadapter.NewHandler(svc, logger)
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	// The signal context is already cancelled at this point, so the shutdown
	// deadline hangs off a fresh context.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
