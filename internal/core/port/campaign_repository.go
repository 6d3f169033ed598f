package port

import (
	"context"
	"time"

	"adpacer/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaign state and the
// spend ledger. It is an outbound port in hexagonal architecture.
// Implementations must be concurrency-safe: every mutating method locks the
// campaign row for the duration of its read-decide-write cycle so concurrent
// spends and sweeps on the same campaign serialize instead of racing.
type CampaignRepository interface {
	// GetCampaign returns a campaign by id with its dayparting schedules
	// attached. Unknown ids yield domain.ErrCampaignNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns all campaigns ordered by id, without schedules.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// ListByStatus returns campaigns in any of the given statuses, without
	// schedules.
	ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Campaign, error)
	// ListDayparted returns campaigns in any of the given statuses that have
	// at least one active dayparting schedule, with schedules attached.
	// Campaigns without active windows are not subject to dayparting and are
	// excluded.
	ListDayparted(ctx context.Context, statuses ...domain.Status) ([]domain.Campaign, error)
	// ListSpendLog returns a campaign's most recent ledger entries, newest
	// first. Unknown ids yield domain.ErrCampaignNotFound.
	ListSpendLog(ctx context.Context, campaignID int64, limit int) ([]domain.SpendLogEntry, error)

	// RecordSpend appends one ledger entry and applies the matching counter
	// increment (and automatic pause, when a budget is exceeded) to the
	// campaign in a single transaction. A failure leaves neither write behind.
	RecordSpend(ctx context.Context, campaignID int64, amount domain.Money, description string, now time.Time) (*SpendResult, error)
	// UpdateCampaign loads the campaign with its schedules under a row lock,
	// applies mutate and, when mutate reports a change, persists the new
	// state. Returning false from mutate skips the write entirely, which is
	// what keeps re-run sweeps from touching already-converged rows.
	UpdateCampaign(ctx context.Context, id int64, mutate func(*domain.Campaign) (bool, error)) (bool, error)

	// ResetDailySpends zeroes daily_spend on every campaign where it is
	// non-zero and returns how many rows changed.
	ResetDailySpends(ctx context.Context) (int64, error)
	// ResetMonthlySpends zeroes monthly_spend on every campaign where it is
	// non-zero and returns how many rows changed.
	ResetMonthlySpends(ctx context.Context) (int64, error)

	// SpendSummary aggregates campaign counts and spend totals, across the
	// whole population or one brand's campaigns when brandID is non-nil.
	SpendSummary(ctx context.Context, brandID *int64) (*SpendSummary, error)
}

// SpendResult reports the outcome of one recorded spend: the ledger entry
// written, the campaign state after the increment and whether this spend
// tripped the automatic pause.
type SpendResult struct {
	Campaign domain.Campaign      `json:"campaign"`
	Entry    domain.SpendLogEntry `json:"entry"`
	Paused   bool                 `json:"paused"`
}

// SpendSummary is the repository-level aggregate backing the spend report.
type SpendSummary struct {
	TotalCampaigns    int64        `json:"total_campaigns"`
	ActiveCampaigns   int64        `json:"active_campaigns"`
	PausedCampaigns   int64        `json:"paused_campaigns"`
	TotalDailySpend   domain.Money `json:"total_daily_spend"`
	TotalMonthlySpend domain.Money `json:"total_monthly_spend"`
}
