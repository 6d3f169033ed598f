package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"adpacer/internal/core/domain"
	"adpacer/internal/core/port"
)

// fakeRepo is an in-memory CampaignRepository for exercising the usecase
// without a database. Campaigns are stored bare; schedules live in their own
// map and are attached on the reads that promise them, mirroring the real
// repository. failures maps campaign ids to errors returned from mutating
// calls, simulating per-row persistence failures mid-sweep.
type fakeRepo struct {
	mu        sync.Mutex
	campaigns map[int64]domain.Campaign
	schedules map[int64]domain.ScheduleSet
	ledger    []domain.SpendLogEntry
	failures  map[int64]error
	nextLogID int64
}

func newFakeRepo(campaigns ...*domain.Campaign) *fakeRepo {
	r := &fakeRepo{
		campaigns: make(map[int64]domain.Campaign),
		schedules: make(map[int64]domain.ScheduleSet),
		failures:  make(map[int64]error),
	}
	for _, c := range campaigns {
		stored := *c
		if len(stored.Schedules) > 0 {
			r.schedules[c.ID] = stored.Schedules
			stored.Schedules = nil
		}
		r.campaigns[c.ID] = stored
	}
	return r
}

func (r *fakeRepo) stored(id int64) domain.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.campaigns[id]
}

func (r *fakeRepo) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	c.Schedules = r.schedules[id]
	return &c, nil
}

func (r *fakeRepo) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, statuses ...domain.Status) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.campaigns {
		for _, s := range statuses {
			if c.Status == s {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListDayparted(_ context.Context, statuses ...domain.Status) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for id, c := range r.campaigns {
		if !r.schedules[id].HasActive() {
			continue
		}
		for _, s := range statuses {
			if c.Status == s {
				c.Schedules = r.schedules[id]
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) ListSpendLog(_ context.Context, campaignID int64, limit int) ([]domain.SpendLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaignID]; !ok {
		return nil, domain.ErrCampaignNotFound
	}
	var out []domain.SpendLogEntry
	for i := len(r.ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if r.ledger[i].CampaignID == campaignID {
			out = append(out, r.ledger[i])
		}
	}
	return out, nil
}

func (r *fakeRepo) RecordSpend(_ context.Context, campaignID int64, amount domain.Money, description string, now time.Time) (*port.SpendResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failures[campaignID]; err != nil {
		return nil, err
	}
	c, ok := r.campaigns[campaignID]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	paused, err := c.AddSpend(amount)
	if err != nil {
		return nil, err
	}
	r.nextLogID++
	entry := domain.SpendLogEntry{
		ID:          r.nextLogID,
		CampaignID:  campaignID,
		Amount:      amount,
		LoggedAt:    now,
		Description: description,
	}
	c.UpdatedAt = now
	r.campaigns[campaignID] = c
	r.ledger = append(r.ledger, entry)
	return &port.SpendResult{Campaign: c, Entry: entry, Paused: paused}, nil
}

func (r *fakeRepo) UpdateCampaign(_ context.Context, id int64, mutate func(*domain.Campaign) (bool, error)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failures[id]; err != nil {
		return false, err
	}
	c, ok := r.campaigns[id]
	if !ok {
		return false, domain.ErrCampaignNotFound
	}
	c.Schedules = r.schedules[id]
	changed, err := mutate(&c)
	if err != nil || !changed {
		return false, err
	}
	c.Schedules = nil
	r.campaigns[id] = c
	return true, nil
}

func (r *fakeRepo) ResetDailySpends(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.campaigns {
		if c.DailySpend.IsZero() {
			continue
		}
		c.ResetDailySpend()
		r.campaigns[id] = c
		n++
	}
	return n, nil
}

func (r *fakeRepo) ResetMonthlySpends(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.campaigns {
		if c.MonthlySpend.IsZero() {
			continue
		}
		c.ResetMonthlySpend()
		r.campaigns[id] = c
		n++
	}
	return n, nil
}

func (r *fakeRepo) SpendSummary(_ context.Context, brandID *int64) (*port.SpendSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum port.SpendSummary
	for _, c := range r.campaigns {
		if brandID != nil && c.BrandID != *brandID {
			continue
		}
		sum.TotalCampaigns++
		switch c.Status {
		case domain.StatusActive:
			sum.ActiveCampaigns++
		case domain.StatusPaused:
			sum.PausedCampaigns++
		}
		sum.TotalDailySpend = sum.TotalDailySpend.Add(c.DailySpend)
		sum.TotalMonthlySpend = sum.TotalMonthlySpend.Add(c.MonthlySpend)
	}
	return &sum, nil
}
