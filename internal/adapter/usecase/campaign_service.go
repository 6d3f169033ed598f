package usecase

import (
	"context"
	"log/slog"
	"time"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"
)

const defaultSpendLogLimit = 50

// CampaignUseCase provides the business logic for spend recording and the
// periodic enforcement sweeps. It orchestrates the domain aggregate and the
// repository to implement the CampaignUseCase interface.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	logger *slog.Logger

	// now is the sweep clock. Each pass captures one reading and uses it for
	// every predicate in that pass, so a slow sweep stays self-consistent.
	now func() time.Time
}

// NewCampaignUseCase creates a new usecase with the provided repository.
func NewCampaignUseCase(repo port.CampaignRepository, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, logger: logger, now: time.Now}
}

// RecordSpend appends a spend event to the ledger and updates the campaign's
// cached counters in one transaction, pausing the campaign when the spend
// pushes it over either budget. Amounts that are not strictly positive are
// rejected before anything is written.
func (u *CampaignUseCase) RecordSpend(ctx context.Context, campaignID int64, amount domain.Money, description string) (*port.SpendResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	res, err := u.repo.RecordSpend(ctx, campaignID, amount, description, u.now())
	if err != nil {
		return nil, err
	}
	if res.Paused {
		u.logger.Info("campaign paused on budget overrun",
			slog.Int64("campaign_id", res.Campaign.ID),
			slog.String("daily_spend", res.Campaign.DailySpend.String()),
			slog.String("monthly_spend", res.Campaign.MonthlySpend.String()))
	}
	return res, nil
}

// GetCampaign returns a campaign with its dayparting schedules.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// ListCampaigns returns all campaigns, narrowed to one status when status is
// non-empty.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, status domain.Status) ([]domain.Campaign, error) {
	if status == "" {
		return u.repo.ListCampaigns(ctx)
	}
	return u.repo.ListByStatus(ctx, status)
}

// ListSpendLog returns a campaign's most recent ledger entries, newest first.
func (u *CampaignUseCase) ListSpendLog(ctx context.Context, campaignID int64, limit int) ([]domain.SpendLogEntry, error) {
	if limit <= 0 {
		limit = defaultSpendLogLimit
	}
	return u.repo.ListSpendLog(ctx, campaignID, limit)
}

// SpendReport aggregates campaign counts and spend totals, over all
// campaigns or one brand's.
func (u *CampaignUseCase) SpendReport(ctx context.Context, brandID *int64) (*port.SpendReport, error) {
	sum, err := u.repo.SpendSummary(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return &port.SpendReport{
		TotalCampaigns:    sum.TotalCampaigns,
		ActiveCampaigns:   sum.ActiveCampaigns,
		PausedCampaigns:   sum.PausedCampaigns,
		TotalDailySpend:   sum.TotalDailySpend,
		TotalMonthlySpend: sum.TotalMonthlySpend,
		GeneratedAt:       u.now(),
	}, nil
}
