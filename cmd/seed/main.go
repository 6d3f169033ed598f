// Package main seeds the database with demo brands, campaigns, dayparting
// schedules and spend history for local development. Seeding is idempotent
// and safe to run repeatedly against the same database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adpacer/internal/config"
	"adpacer/internal/db"
)

func main() {
	var migrate bool
	var timeout time.Duration
	flag.BoolVar(&migrate, "migrate", true, "apply migrations before seeding")
	flag.DurationVar(&timeout, "timeout", time.Minute, "abort seeding after this long")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if migrate {
		if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Seed(ctx, pool); err != nil {
		logger.Error("seed error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed complete")
}
