package port

import (
	"context"
	"time"

	"adpacer/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the budget
// enforcement core. This interface represents the primary port into the
// application domain; the HTTP layer and the sweep scheduler are both thin
// callers of it.
type CampaignUseCase interface {
	// RecordSpend appends a spend event to the ledger and updates the
	// campaign's counters, pausing it when a budget is exceeded. It returns
	// domain.ErrCampaignNotFound for unknown ids and domain.ErrInvalidAmount
	// for amounts that are not strictly positive; in both cases nothing is
	// written.
	RecordSpend(ctx context.Context, campaignID int64, amount domain.Money, description string) (*SpendResult, error)

	// GetCampaign returns a campaign with its dayparting schedules.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns all campaigns, or only those in the given status
	// when status is non-empty.
	ListCampaigns(ctx context.Context, status domain.Status) ([]domain.Campaign, error)
	// ListSpendLog returns a campaign's most recent ledger entries.
	ListSpendLog(ctx context.Context, campaignID int64, limit int) ([]domain.SpendLogEntry, error)
	// SpendReport aggregates campaign counts and spend totals, narrowed to
	// one brand's campaigns when brandID is non-nil. A brand with no
	// campaigns yields an all-zero report, not an error.
	SpendReport(ctx context.Context, brandID *int64) (*SpendReport, error)

	// EnforceBudgets pauses every active campaign that exceeded a budget.
	EnforceBudgets(ctx context.Context) (BudgetTally, error)
	// EnforceDayparting pauses active campaigns outside their windows and
	// reactivates eligible paused ones inside them.
	EnforceDayparting(ctx context.Context) (DaypartingTally, error)
	// ResetDailySpends zeroes daily counters and reactivates eligible paused
	// campaigns.
	ResetDailySpends(ctx context.Context) (ResetTally, error)
	// ResetMonthlySpends zeroes monthly counters and reactivates eligible
	// paused campaigns.
	ResetMonthlySpends(ctx context.Context) (ResetTally, error)
	// ActivateEligible moves eligible draft campaigns to active.
	ActivateEligible(ctx context.Context) (ActivationTally, error)
}

// BudgetTally is the result of one budget enforcement sweep.
type BudgetTally struct {
	Checked int64 `json:"checked_count"`
	Paused  int64 `json:"paused_count"`
}

// DaypartingTally is the result of one dayparting enforcement sweep.
type DaypartingTally struct {
	Enabled  int64 `json:"enabled_count"`
	Disabled int64 `json:"disabled_count"`
}

// ResetTally is the result of one daily or monthly reset sweep.
type ResetTally struct {
	Reset       int64 `json:"reset_count"`
	Reactivated int64 `json:"reactivated_count"`
}

// ActivationTally is the result of one draft activation sweep.
type ActivationTally struct {
	Activated int64 `json:"activated_count"`
}

// SpendReport is the aggregate spend overview returned to operators.
type SpendReport struct {
	TotalCampaigns    int64        `json:"total_campaigns"`
	ActiveCampaigns   int64        `json:"active_campaigns"`
	PausedCampaigns   int64        `json:"paused_campaigns"`
	TotalDailySpend   domain.Money `json:"total_daily_spend"`
	TotalMonthlySpend domain.Money `json:"total_monthly_spend"`
	GeneratedAt       time.Time    `json:"generated_at"`
}
