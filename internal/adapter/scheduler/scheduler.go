// Package scheduler drives the periodic enforcement sweeps. The budget,
// dayparting and activation sweeps run on fixed intervals; spend resets
// fire at midnight in the configured timezone, the monthly one only when
// a new month starts. When a Redis locker is present each run takes a
// short leader lock so that one instance sweeps at a time; without Redis
// the sweeps run unlocked, which is safe because every sweep is
// idempotent and campaign updates serialize at the database.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"adpacer/internal/config/configs"
	"adpacer/internal/core/port"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
)

const (
	lockBudget       = "adpacer:sweep:budget"
	lockDayparting   = "adpacer:sweep:dayparting"
	lockActivation   = "adpacer:sweep:activation"
	lockDailyReset   = "adpacer:sweep:daily-reset"
	lockMonthlyReset = "adpacer:sweep:monthly-reset"

	// lockTTL bounds how long a crashed holder can block its peers.
	lockTTL = time.Minute
)

type Scheduler struct {
	svc    port.CampaignUseCase
	locker *redislock.Client // nil runs every sweep unlocked
	logger *slog.Logger
	cfg    configs.Sweeps
	loc    *time.Location
	runner string

	now func() time.Time
}

// New builds a scheduler from the sweep configuration. locker may be nil
// when Redis is disabled.
func New(svc port.CampaignUseCase, locker *redislock.Client, logger *slog.Logger, cfg configs.Sweeps) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load sweep timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.BudgetInterval <= 0 {
		cfg.BudgetInterval = 5 * time.Minute
	}
	if cfg.DaypartingInterval <= 0 {
		cfg.DaypartingInterval = 5 * time.Minute
	}
	if cfg.ActivationInterval <= 0 {
		cfg.ActivationInterval = 10 * time.Minute
	}
	return &Scheduler{
		svc:    svc,
		locker: locker,
		logger: logger,
		cfg:    cfg,
		loc:    loc,
		runner: uuid.NewString(),
		now:    time.Now,
	}, nil
}

// Run starts every sweep loop and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("sweep scheduler started",
		slog.String("runner", s.runner),
		slog.String("timezone", s.loc.String()),
		slog.Duration("budget_interval", s.cfg.BudgetInterval),
		slog.Duration("dayparting_interval", s.cfg.DaypartingInterval),
		slog.Duration("activation_interval", s.cfg.ActivationInterval),
	)

	var wg sync.WaitGroup
	loop := func(f func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(ctx)
		}()
	}

	loop(func(ctx context.Context) {
		s.intervalLoop(ctx, "budget", lockBudget, s.cfg.BudgetInterval, func(ctx context.Context) error {
			_, err := s.svc.EnforceBudgets(ctx)
			return err
		})
	})
	loop(func(ctx context.Context) {
		s.intervalLoop(ctx, "dayparting", lockDayparting, s.cfg.DaypartingInterval, func(ctx context.Context) error {
			_, err := s.svc.EnforceDayparting(ctx)
			return err
		})
	})
	loop(func(ctx context.Context) {
		s.intervalLoop(ctx, "activation", lockActivation, s.cfg.ActivationInterval, func(ctx context.Context) error {
			_, err := s.svc.ActivateEligible(ctx)
			return err
		})
	})
	loop(s.midnightLoop)

	wg.Wait()
	s.logger.Info("sweep scheduler stopped", slog.String("runner", s.runner))
}

// intervalLoop runs sweep immediately and then once per tick until ctx is
// cancelled.
func (s *Scheduler) intervalLoop(ctx context.Context, name, lockKey string, every time.Duration, sweep func(context.Context) error) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		s.runLocked(ctx, name, lockKey, sweep)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// midnightLoop sleeps until the next midnight in the configured timezone
// and fires the spend resets. Unlike the interval sweeps it never runs at
// startup: zeroing counters anywhere but the boundary would erase spend
// accumulated since the last reset.
func (s *Scheduler) midnightLoop(ctx context.Context) {
	for {
		next := nextMidnight(s.now().In(s.loc))
		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		s.fireResets(ctx, next)
	}
}

// fireResets runs the daily reset for the day starting at midnight, and
// the monthly reset first thing on the first. Daily runs before monthly
// so a campaign crossing both boundaries reactivates once, after both
// counters are clear.
func (s *Scheduler) fireResets(ctx context.Context, midnight time.Time) {
	s.runLocked(ctx, "daily-reset", lockDailyReset, func(ctx context.Context) error {
		_, err := s.svc.ResetDailySpends(ctx)
		return err
	})
	if midnight.Day() == 1 {
		s.runLocked(ctx, "monthly-reset", lockMonthlyReset, func(ctx context.Context) error {
			_, err := s.svc.ResetMonthlySpends(ctx)
			return err
		})
	}
}

// runLocked executes one sweep pass under the leader lock. A held lock
// means another instance is already on it, so the pass is skipped; a
// Redis failure degrades to an unlocked run.
func (s *Scheduler) runLocked(ctx context.Context, name, lockKey string, sweep func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, lockKey, lockTTL, nil)
		switch {
		case errors.Is(err, redislock.ErrNotObtained):
			s.logger.Debug("sweep held by another instance, skipping",
				slog.String("sweep", name), slog.String("runner", s.runner))
			return
		case err != nil:
			s.logger.Warn("sweep lock unavailable, running unlocked",
				slog.String("sweep", name), slog.String("runner", s.runner), slog.Any("error", err))
		default:
			defer func() {
				if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
					s.logger.Warn("sweep lock release failed",
						slog.String("sweep", name), slog.Any("error", err))
				}
			}()
		}
	}
	if err := sweep(ctx); err != nil {
		s.logger.Error("sweep failed",
			slog.String("sweep", name), slog.String("runner", s.runner), slog.Any("error", err))
	}
}

// nextMidnight returns the first midnight strictly after t in t's location.
func nextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
