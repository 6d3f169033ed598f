package domain

import "time"

// Status is the closed set of campaign lifecycle states.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Campaign is the aggregate root for budget and dayparting enforcement.
// Status changes only through Activate, Pause and AddSpend; nothing else may
// assign it. DailySpend and MonthlySpend are caches over the spend ledger and
// must equal the ledger sums for the current day and month whenever no write
// is in flight. BrandID is a reference into shared context; the campaign does
// not own the brand.
type Campaign struct {
	ID            int64       `json:"id"`
	BrandID       int64       `json:"brand_id"`
	Name          string      `json:"name"`
	Status        Status      `json:"status"`
	DailyBudget   Money       `json:"daily_budget"`
	MonthlyBudget Money       `json:"monthly_budget"`
	DailySpend    Money       `json:"daily_spend"`
	MonthlySpend  Money       `json:"monthly_spend"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       *time.Time  `json:"end_date,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Schedules     ScheduleSet `json:"schedules,omitempty"`
}

// IsWithinBudget reports whether both spend counters are at or under their
// budgets. Spending exactly up to the budget is still within it.
func (c *Campaign) IsWithinBudget() bool {
	return c.DailySpend.LessThanOrEqual(c.DailyBudget) &&
		c.MonthlySpend.LessThanOrEqual(c.MonthlyBudget)
}

// CanBeActivated is the single activation gate. Every path that moves a
// campaign to active must go through it; no caller re-derives a subset of
// these conditions. A campaign is eligible when it is draft or paused, its
// date range covers now's calendar date, and it is within budget.
func (c *Campaign) CanBeActivated(now time.Time) bool {
	if c.Status != StatusDraft && c.Status != StatusPaused {
		return false
	}
	today := dateOnly(now)
	if dateOnly(c.StartDate).After(today) {
		return false
	}
	if c.EndDate != nil && dateOnly(*c.EndDate).Before(today) {
		return false
	}
	return c.IsWithinBudget()
}

// Activate transitions to active when CanBeActivated(now) holds and reports
// whether the status changed. Ineligible campaigns are left untouched; the
// no-op is deliberate so sweeps stay idempotent.
func (c *Campaign) Activate(now time.Time) bool {
	if !c.CanBeActivated(now) {
		return false
	}
	c.Status = StatusActive
	return true
}

// Pause transitions active to paused and reports whether the status changed.
// Any other starting status is a no-op.
func (c *Campaign) Pause() bool {
	if c.Status != StatusActive {
		return false
	}
	c.Status = StatusPaused
	return true
}

// AddSpend increments both spend counters by amount and, when the result
// exceeds either budget, pauses the campaign in the same step. The returned
// bool reports whether that automatic pause happened. Amounts that are not
// strictly positive are rejected with ErrInvalidAmount before any mutation.
func (c *Campaign) AddSpend(amount Money) (bool, error) {
	if !amount.IsPositive() {
		return false, ErrInvalidAmount
	}
	c.DailySpend = c.DailySpend.Add(amount)
	c.MonthlySpend = c.MonthlySpend.Add(amount)
	if !c.IsWithinBudget() {
		return c.Pause(), nil
	}
	return false, nil
}

// ResetDailySpend zeroes the daily counter. Only the reset sweep calls this.
func (c *Campaign) ResetDailySpend() {
	c.DailySpend = Money{}
}

// ResetMonthlySpend zeroes the monthly counter. Only the reset sweep calls this.
func (c *Campaign) ResetMonthlySpend() {
	c.MonthlySpend = Money{}
}

// WithinSchedule reports whether now falls inside the campaign's dayparting
// windows. Campaigns without active windows are unrestricted on the time axis.
func (c *Campaign) WithinSchedule(now time.Time) bool {
	return c.Schedules.Within(now)
}

// dateOnly truncates t to its calendar date in t's location, normalised to
// UTC midnight so dates from different sources compare correctly.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
