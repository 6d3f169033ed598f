package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const campaignColumns = `id, brand_id, name, status, daily_budget, monthly_budget, daily_spend, monthly_spend, start_date, end_date, created_at, updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Every mutating method runs in a transaction that locks the
// campaign row with SELECT ... FOR UPDATE, so concurrent spends and sweeps on
// the same campaign serialize on the row lock.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// querier lets the schedule loader run against both the pool and an open
// transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collectCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.BrandID,
		&c.Name,
		&c.Status,
		&c.DailyBudget,
		&c.MonthlyBudget,
		&c.DailySpend,
		&c.MonthlySpend,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// GetCampaign returns a campaign with its schedules attached.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, collectCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	schedules, err := loadSchedules(ctx, r.pool, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Schedules = schedules[id]
	return &c, nil
}

// ListCampaigns returns all campaigns ordered by id.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, collectCampaign)
}

// ListByStatus returns campaigns in any of the given statuses.
func (r *CampaignRepository) ListByStatus(ctx context.Context, statuses ...domain.Status) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE status = ANY($1) ORDER BY id`,
		statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, collectCampaign)
}

// ListDayparted returns campaigns in any of the given statuses that carry at
// least one active dayparting window, schedules attached.
func (r *CampaignRepository) ListDayparted(ctx context.Context, statuses ...domain.Status) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+campaignColumns+`
        FROM campaigns
        WHERE status = ANY($1)
          AND EXISTS (
              SELECT 1 FROM dayparting_schedules s
              WHERE s.campaign_id = campaigns.id AND s.is_active
          )
        ORDER BY id`,
		statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, collectCampaign)
	if err != nil || len(campaigns) == 0 {
		return campaigns, err
	}
	ids := make([]int64, len(campaigns))
	for i := range campaigns {
		ids[i] = campaigns[i].ID
	}
	schedules, err := loadSchedules(ctx, r.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range campaigns {
		campaigns[i].Schedules = schedules[campaigns[i].ID]
	}
	return campaigns, nil
}

// ListSpendLog returns a campaign's ledger entries, newest first.
func (r *CampaignRepository) ListSpendLog(ctx context.Context, campaignID int64, limit int) ([]domain.SpendLogEntry, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, campaignID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCampaignNotFound
	}
	rows, err := r.pool.Query(ctx, `
        SELECT id, campaign_id, amount, logged_at, description
        FROM spend_logs
        WHERE campaign_id = $1
        ORDER BY logged_at DESC, id DESC
        LIMIT $2`,
		campaignID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpendLogEntry, error) {
		var e domain.SpendLogEntry
		err := row.Scan(&e.ID, &e.CampaignID, &e.Amount, &e.LoggedAt, &e.Description)
		return e, err
	})
}

// RecordSpend appends a ledger entry and applies the counter increment (and
// automatic pause) to the locked campaign row in one transaction. A failure
// anywhere rolls back both writes.
func (r *CampaignRepository) RecordSpend(ctx context.Context, campaignID int64, amount domain.Money, description string, now time.Time) (_ *port.SpendResult, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		// A serialization conflict surfaces at commit; it must not be
		// reported as a recorded spend.
		err = tx.Commit(ctx)
	}()

	c, err := lockCampaign(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}
	paused, err := c.AddSpend(amount)
	if err != nil {
		return nil, err
	}

	entry := domain.SpendLogEntry{
		CampaignID:  campaignID,
		Amount:      amount,
		LoggedAt:    now,
		Description: description,
	}
	err = tx.QueryRow(ctx, `
        INSERT INTO spend_logs (campaign_id, amount, logged_at, description)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		entry.CampaignID, entry.Amount, entry.LoggedAt, entry.Description).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("insert spend log: %w", err)
	}

	c.UpdatedAt = now.UTC()
	_, err = tx.Exec(ctx, `
        UPDATE campaigns
        SET daily_spend = $1, monthly_spend = $2, status = $3, updated_at = $4
        WHERE id = $5`,
		c.DailySpend, c.MonthlySpend, c.Status, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, fmt.Errorf("update campaign counters: %w", err)
	}
	return &port.SpendResult{Campaign: *c, Entry: entry, Paused: paused}, nil
}

// UpdateCampaign locks the campaign row, attaches its schedules, applies
// mutate and persists the result when mutate reports a change. When mutate
// returns false the transaction commits without writing anything.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, id int64, mutate func(*domain.Campaign) (bool, error)) (changed bool, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	c, err := lockCampaign(ctx, tx, id)
	if err != nil {
		return false, err
	}
	schedules, err := loadSchedules(ctx, tx, []int64{id})
	if err != nil {
		return false, err
	}
	c.Schedules = schedules[id]

	changed, err = mutate(c)
	if err != nil || !changed {
		return false, err
	}

	c.UpdatedAt = time.Now().UTC()
	_, err = tx.Exec(ctx, `
        UPDATE campaigns
        SET status = $1, daily_spend = $2, monthly_spend = $3, updated_at = $4
        WHERE id = $5`,
		c.Status, c.DailySpend, c.MonthlySpend, c.UpdatedAt, c.ID)
	if err != nil {
		return false, fmt.Errorf("update campaign: %w", err)
	}
	return true, nil
}

// ResetDailySpends zeroes non-zero daily counters and reports how many rows
// changed. Touching only dirty rows keeps an immediate re-run at zero.
func (r *CampaignRepository) ResetDailySpends(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET daily_spend = 0, updated_at = now() WHERE daily_spend <> 0`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ResetMonthlySpends zeroes non-zero monthly counters and reports how many
// rows changed.
func (r *CampaignRepository) ResetMonthlySpends(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET monthly_spend = 0, updated_at = now() WHERE monthly_spend <> 0`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SpendSummary aggregates campaign counts and spend totals in one query,
// optionally narrowed to a single brand.
func (r *CampaignRepository) SpendSummary(ctx context.Context, brandID *int64) (*port.SpendSummary, error) {
	var sum port.SpendSummary
	err := r.pool.QueryRow(ctx, `
        SELECT count(*),
               count(*) FILTER (WHERE status = 'active'),
               count(*) FILTER (WHERE status = 'paused'),
               COALESCE(sum(daily_spend), 0),
               COALESCE(sum(monthly_spend), 0)
        FROM campaigns
        WHERE $1::bigint IS NULL OR brand_id = $1`,
		brandID).
		Scan(&sum.TotalCampaigns, &sum.ActiveCampaigns, &sum.PausedCampaigns,
			&sum.TotalDailySpend, &sum.TotalMonthlySpend)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// lockCampaign reads one campaign under FOR UPDATE inside tx.
func lockCampaign(ctx context.Context, tx pgx.Tx, id int64) (*domain.Campaign, error) {
	rows, err := tx.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, collectCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// loadSchedules fetches dayparting windows for the given campaigns, grouped
// by campaign id. TIME columns arrive as pgtype.Time and are converted to
// seconds since midnight.
func loadSchedules(ctx context.Context, q querier, campaignIDs []int64) (map[int64]domain.ScheduleSet, error) {
	rows, err := q.Query(ctx, `
        SELECT id, campaign_id, day_of_week, start_time, end_time, is_active
        FROM dayparting_schedules
        WHERE campaign_id = ANY($1)
        ORDER BY campaign_id, day_of_week, start_time`,
		campaignIDs)
	if err != nil {
		return nil, err
	}
	schedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DaypartingSchedule, error) {
		var (
			s          domain.DaypartingSchedule
			start, end pgtype.Time
		)
		err := row.Scan(&s.ID, &s.CampaignID, &s.Day, &start, &end, &s.Active)
		s.Start = timeOfDay(start)
		s.End = timeOfDay(end)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	out := make(map[int64]domain.ScheduleSet, len(campaignIDs))
	for _, s := range schedules {
		out[s.CampaignID] = append(out[s.CampaignID], s)
	}
	return out, nil
}

func timeOfDay(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(t.Microseconds / int64(time.Second/time.Microsecond))
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
