package usecase

import (
	"context"
	"log/slog"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"
)

// EnforceBudgets sweeps every active campaign and pauses the ones that
// exceeded a budget. A campaign that fails to update is logged and skipped;
// the sweep continues and reports the partial tally.
func (u *CampaignUseCase) EnforceBudgets(ctx context.Context) (port.BudgetTally, error) {
	var tally port.BudgetTally
	campaigns, err := u.repo.ListByStatus(ctx, domain.StatusActive)
	if err != nil {
		return tally, err
	}
	for _, c := range campaigns {
		tally.Checked++
		if c.IsWithinBudget() {
			// No write needed; a concurrent overspend pauses the campaign
			// inside its own transaction.
			continue
		}
		changed, err := u.repo.UpdateCampaign(ctx, c.ID, func(c *domain.Campaign) (bool, error) {
			if c.IsWithinBudget() {
				return false, nil
			}
			return c.Pause(), nil
		})
		if err != nil {
			u.logger.Error("budget sweep: update failed",
				slog.Int64("campaign_id", c.ID), slog.Any("error", err))
			continue
		}
		if changed {
			tally.Paused++
			u.logger.Info("budget sweep: campaign paused",
				slog.Int64("campaign_id", c.ID),
				slog.String("daily_spend", c.DailySpend.String()),
				slog.String("daily_budget", c.DailyBudget.String()))
		}
	}
	u.logger.Info("budget sweep complete",
		slog.Int64("checked", tally.Checked), slog.Int64("paused", tally.Paused))
	return tally, nil
}

// EnforceDayparting sweeps campaigns that carry active dayparting windows,
// pausing active campaigns outside their windows and reactivating paused ones
// inside them. Reactivation still goes through the activation gate, so a
// campaign paused for budget reasons stays paused even inside its window.
// Campaigns without active windows are untouched.
func (u *CampaignUseCase) EnforceDayparting(ctx context.Context) (port.DaypartingTally, error) {
	var tally port.DaypartingTally
	now := u.now()
	campaigns, err := u.repo.ListDayparted(ctx, domain.StatusActive, domain.StatusPaused)
	if err != nil {
		return tally, err
	}
	for _, c := range campaigns {
		within := c.WithinSchedule(now)
		switch {
		case within && c.Status == domain.StatusPaused:
			changed, err := u.repo.UpdateCampaign(ctx, c.ID, func(c *domain.Campaign) (bool, error) {
				if !c.WithinSchedule(now) {
					return false, nil
				}
				return c.Activate(now), nil
			})
			if err != nil {
				u.logger.Error("dayparting sweep: update failed",
					slog.Int64("campaign_id", c.ID), slog.Any("error", err))
				continue
			}
			if changed {
				tally.Enabled++
				u.logger.Info("dayparting sweep: campaign enabled",
					slog.Int64("campaign_id", c.ID))
			}
		case !within && c.Status == domain.StatusActive:
			changed, err := u.repo.UpdateCampaign(ctx, c.ID, func(c *domain.Campaign) (bool, error) {
				if c.WithinSchedule(now) {
					return false, nil
				}
				return c.Pause(), nil
			})
			if err != nil {
				u.logger.Error("dayparting sweep: update failed",
					slog.Int64("campaign_id", c.ID), slog.Any("error", err))
				continue
			}
			if changed {
				tally.Disabled++
				u.logger.Info("dayparting sweep: campaign disabled",
					slog.Int64("campaign_id", c.ID))
			}
		}
	}
	u.logger.Info("dayparting sweep complete",
		slog.Int64("enabled", tally.Enabled), slog.Int64("disabled", tally.Disabled))
	return tally, nil
}
