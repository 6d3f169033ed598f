package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"adpacer/internal/core/domain"
)

// Monday 2025-06-02 10:00 UTC.
var testNow = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeRepo) *CampaignUseCase {
	svc := NewCampaignUseCase(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return testNow }
	return svc
}

func activeCampaign(id int64) *domain.Campaign {
	return &domain.Campaign{
		ID:            id,
		BrandID:       1,
		Name:          "Summer Sale",
		Status:        domain.StatusActive,
		DailyBudget:   domain.MustMoney("100.00"),
		MonthlyBudget: domain.MustMoney("3000.00"),
		StartDate:     time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

// TestRecordSpendPausesOverBudget drives the full overspend path: 90.00
// already spent of a 100.00 budget, a 15.00 spend lands, the counters reach
// 105.00, exactly one ledger entry appears and the campaign pauses.
func TestRecordSpendPausesOverBudget(t *testing.T) {
	c := activeCampaign(1)
	c.DailySpend = domain.MustMoney("90.00")
	c.MonthlySpend = domain.MustMoney("90.00")
	repo := newFakeRepo(c)
	svc := newTestUseCase(repo)

	res, err := svc.RecordSpend(context.Background(), 1, domain.MustMoney("15.00"), "Google Ads spend")
	if err != nil {
		t.Fatalf("RecordSpend: %v", err)
	}
	if !res.Paused {
		t.Fatal("expected automatic pause")
	}
	if !res.Entry.Amount.Equal(domain.MustMoney("15.00")) {
		t.Fatalf("entry amount = %s, want 15.00", res.Entry.Amount)
	}

	stored := repo.stored(1)
	if stored.Status != domain.StatusPaused {
		t.Fatalf("status = %s, want paused", stored.Status)
	}
	if !stored.DailySpend.Equal(domain.MustMoney("105.00")) {
		t.Fatalf("daily spend = %s, want 105.00", stored.DailySpend)
	}

	log, err := svc.ListSpendLog(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("ListSpendLog: %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(log))
	}
	if log[0].Description != "Google Ads spend" {
		t.Fatalf("description = %q", log[0].Description)
	}
}

// TestRecordSpendInvalidAmount rejects a zero amount before anything is
// written.
func TestRecordSpendInvalidAmount(t *testing.T) {
	repo := newFakeRepo(activeCampaign(1))
	svc := newTestUseCase(repo)

	if _, err := svc.RecordSpend(context.Background(), 1, domain.Money{}, "noop"); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(repo.ledger) != 0 {
		t.Fatal("rejected spend must not reach the ledger")
	}
	if !repo.stored(1).DailySpend.IsZero() {
		t.Fatal("rejected spend must not mutate counters")
	}
}

// TestRecordSpendUnknownCampaign surfaces not-found to the caller.
func TestRecordSpendUnknownCampaign(t *testing.T) {
	svc := newTestUseCase(newFakeRepo())

	_, err := svc.RecordSpend(context.Background(), 404, domain.MustMoney("1.00"), "x")
	if !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("err = %v, want ErrCampaignNotFound", err)
	}
}

// TestListCampaignsByStatus narrows to one status when asked.
func TestListCampaignsByStatus(t *testing.T) {
	paused := activeCampaign(2)
	paused.Status = domain.StatusPaused
	repo := newFakeRepo(activeCampaign(1), paused)
	svc := newTestUseCase(repo)

	all, err := svc.ListCampaigns(context.Background(), "")
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d campaigns, want 2", len(all))
	}

	got, err := svc.ListCampaigns(context.Background(), domain.StatusPaused)
	if err != nil {
		t.Fatalf("ListCampaigns(paused): %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("paused list = %+v, want campaign 2 only", got)
	}
}

// TestSpendReport aggregates counts and totals and stamps the clock.
func TestSpendReport(t *testing.T) {
	a := activeCampaign(1)
	a.DailySpend = domain.MustMoney("10.00")
	a.MonthlySpend = domain.MustMoney("200.00")
	p := activeCampaign(2)
	p.Status = domain.StatusPaused
	p.DailySpend = domain.MustMoney("5.50")
	p.MonthlySpend = domain.MustMoney("80.00")
	d := activeCampaign(3)
	d.Status = domain.StatusDraft
	d.BrandID = 2

	svc := newTestUseCase(newFakeRepo(a, p, d))

	rep, err := svc.SpendReport(context.Background(), nil)
	if err != nil {
		t.Fatalf("SpendReport: %v", err)
	}
	if rep.TotalCampaigns != 3 || rep.ActiveCampaigns != 1 || rep.PausedCampaigns != 1 {
		t.Fatalf("counts = %d/%d/%d, want 3/1/1",
			rep.TotalCampaigns, rep.ActiveCampaigns, rep.PausedCampaigns)
	}
	if !rep.TotalDailySpend.Equal(domain.MustMoney("15.50")) {
		t.Fatalf("total daily = %s, want 15.50", rep.TotalDailySpend)
	}
	if !rep.TotalMonthlySpend.Equal(domain.MustMoney("280.00")) {
		t.Fatalf("total monthly = %s, want 280.00", rep.TotalMonthlySpend)
	}
	if !rep.GeneratedAt.Equal(testNow) {
		t.Fatalf("generated at = %s, want %s", rep.GeneratedAt, testNow)
	}
}

// TestSpendReportByBrand narrows the aggregate to one brand's campaigns. An
// unknown brand yields a zero report rather than an error.
func TestSpendReportByBrand(t *testing.T) {
	a := activeCampaign(1)
	a.DailySpend = domain.MustMoney("10.00")
	b := activeCampaign(2)
	b.BrandID = 2
	b.DailySpend = domain.MustMoney("7.00")

	svc := newTestUseCase(newFakeRepo(a, b))

	brand := int64(2)
	rep, err := svc.SpendReport(context.Background(), &brand)
	if err != nil {
		t.Fatalf("SpendReport: %v", err)
	}
	if rep.TotalCampaigns != 1 {
		t.Fatalf("total = %d, want 1", rep.TotalCampaigns)
	}
	if !rep.TotalDailySpend.Equal(domain.MustMoney("7.00")) {
		t.Fatalf("total daily = %s, want 7.00", rep.TotalDailySpend)
	}

	missing := int64(99)
	rep, err = svc.SpendReport(context.Background(), &missing)
	if err != nil {
		t.Fatalf("SpendReport(unknown brand): %v", err)
	}
	if rep.TotalCampaigns != 0 || !rep.TotalDailySpend.IsZero() {
		t.Fatalf("unknown brand report = %+v, want zeroes", rep)
	}
}
