package usecase

import (
	"context"
	"log/slog"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"
)

// ResetDailySpends zeroes every campaign's daily counter and then reactivates
// paused campaigns that pass the activation gate against the reset counters.
// The zeroing runs first so eligibility is evaluated on post-reset state.
func (u *CampaignUseCase) ResetDailySpends(ctx context.Context) (port.ResetTally, error) {
	var tally port.ResetTally
	n, err := u.repo.ResetDailySpends(ctx)
	if err != nil {
		return tally, err
	}
	tally.Reset = n
	if tally.Reactivated, err = u.reactivatePaused(ctx, "daily reset"); err != nil {
		return tally, err
	}
	u.logger.Info("daily reset complete",
		slog.Int64("reset", tally.Reset), slog.Int64("reactivated", tally.Reactivated))
	return tally, nil
}

// ResetMonthlySpends zeroes every campaign's monthly counter and then
// reactivates paused campaigns that pass the activation gate.
func (u *CampaignUseCase) ResetMonthlySpends(ctx context.Context) (port.ResetTally, error) {
	var tally port.ResetTally
	n, err := u.repo.ResetMonthlySpends(ctx)
	if err != nil {
		return tally, err
	}
	tally.Reset = n
	if tally.Reactivated, err = u.reactivatePaused(ctx, "monthly reset"); err != nil {
		return tally, err
	}
	u.logger.Info("monthly reset complete",
		slog.Int64("reset", tally.Reset), slog.Int64("reactivated", tally.Reactivated))
	return tally, nil
}

// ActivateEligible sweeps draft campaigns and activates the ones that pass
// the activation gate. Paused campaigns are left to the dayparting and reset
// sweeps.
func (u *CampaignUseCase) ActivateEligible(ctx context.Context) (port.ActivationTally, error) {
	var tally port.ActivationTally
	now := u.now()
	drafts, err := u.repo.ListByStatus(ctx, domain.StatusDraft)
	if err != nil {
		return tally, err
	}
	for _, c := range drafts {
		if !c.CanBeActivated(now) {
			continue
		}
		changed, err := u.repo.UpdateCampaign(ctx, c.ID, func(c *domain.Campaign) (bool, error) {
			return c.Activate(now), nil
		})
		if err != nil {
			u.logger.Error("activation sweep: update failed",
				slog.Int64("campaign_id", c.ID), slog.Any("error", err))
			continue
		}
		if changed {
			tally.Activated++
			u.logger.Info("activation sweep: campaign activated",
				slog.Int64("campaign_id", c.ID))
		}
	}
	u.logger.Info("activation sweep complete", slog.Int64("activated", tally.Activated))
	return tally, nil
}

// reactivatePaused runs the shared post-reset leg: every paused campaign that
// passes the activation gate is moved back to active. Individual failures are
// logged and skipped so one bad row cannot stall the sweep.
func (u *CampaignUseCase) reactivatePaused(ctx context.Context, sweep string) (int64, error) {
	now := u.now()
	paused, err := u.repo.ListByStatus(ctx, domain.StatusPaused)
	if err != nil {
		return 0, err
	}
	var reactivated int64
	for _, c := range paused {
		if !c.CanBeActivated(now) {
			continue
		}
		changed, err := u.repo.UpdateCampaign(ctx, c.ID, func(c *domain.Campaign) (bool, error) {
			return c.Activate(now), nil
		})
		if err != nil {
			u.logger.Error(sweep+": reactivation failed",
				slog.Int64("campaign_id", c.ID), slog.Any("error", err))
			continue
		}
		if changed {
			reactivated++
			u.logger.Info(sweep+": campaign reactivated",
				slog.Int64("campaign_id", c.ID))
		}
	}
	return reactivated, nil
}
