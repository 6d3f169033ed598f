// Package main provides a one-shot runner for the enforcement sweeps,
// meant for cron or manual operation when the in-process scheduler is
// disabled. The resulting tally is printed to stdout as JSON; logs go to
// stderr. Sweeps are idempotent, so re-running one is always safe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adpacer/internal/adapter/postgres"
	"adpacer/internal/adapter/usecase"
	"adpacer/internal/config"
	"adpacer/internal/db"
)

const usage = "usage: sweep -sweep budget|dayparting|activation|daily-reset|monthly-reset"

func main() {
	var name string
	var timeout time.Duration
	flag.StringVar(&name, "sweep", "", "sweep to run: budget, dayparting, activation, daily-reset or monthly-reset")
	flag.DurationVar(&timeout, "timeout", time.Minute, "abort the sweep after this long")
	flag.Parse()

	switch name {
	case "budget", "dayparting", "activation", "daily-reset", "monthly-reset":
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database connection: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := usecase.NewCampaignUseCase(postgres.NewCampaignRepository(pool), logger)

	var tally any
	switch name {
	case "budget":
		tally, err = svc.EnforceBudgets(ctx)
	case "dayparting":
		tally, err = svc.EnforceDayparting(ctx)
	case "activation":
		tally, err = svc.ActivateEligible(ctx)
	case "daily-reset":
		tally, err = svc.ResetDailySpends(ctx)
	case "monthly-reset":
		tally, err = svc.ResetMonthlySpends(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep %s: %v\n", name, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tally); err != nil {
		fmt.Fprintf(os.Stderr, "encode tally: %v\n", err)
		os.Exit(1)
	}
}
