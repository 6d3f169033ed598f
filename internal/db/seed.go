package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var brandSeeds = []struct {
	name        string
	description string
}{
	{"TechCorp", "Leading techcorp company with innovative products and services."},
	{"FashionForward", "Leading fashionforward company with innovative products and services."},
	{"FoodieDelight", "Leading foodiedelight company with innovative products and services."},
	{"SportsMax", "Leading sportsmax company with innovative products and services."},
	{"HomeStyle", "Leading homestyle company with innovative products and services."},
}

var campaignSeeds = []struct {
	kind          string
	dailyBudget   float64
	monthlyBudget float64
}{
	{"Brand Awareness", 200.00, 5000.00},
	{"Lead Generation", 150.00, 3000.00},
	{"Product Launch", 300.00, 8000.00},
	{"Seasonal Sale", 100.00, 2000.00},
	{"Retargeting", 75.00, 1500.00},
}

var spendDescriptions = []string{
	"Google Ads spend",
	"Facebook Ads spend",
	"Display advertising",
	"Search advertising",
	"Social media advertising",
	"Retargeting campaign",
	"Influencer marketing",
	"Video advertising",
}

// Seed inserts demo data: brands, campaigns in a mix of statuses and spend
// levels, weekday dayparting windows for most campaigns and a short spend
// history per campaign. Running it twice does not duplicate rows.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i, b := range brandSeeds {
		brandID := int64(i + 1)
		_, err := db.Exec(ctx, `INSERT INTO brands (id, name, description, is_active, created_at, updated_at)
VALUES ($1, $2, $3, TRUE, now(), now()) ON CONFLICT DO NOTHING`,
			brandID, b.name, b.description)
		if err != nil {
			return err
		}

		// three campaigns per brand, statuses rotating
		for j := 0; j < 3; j++ {
			campaignID := brandID*10 + int64(j)
			seed := campaignSeeds[(i+j)%len(campaignSeeds)]
			name := fmt.Sprintf("%s - %s", seed.kind, b.name)
			status := []string{"active", "paused", "draft"}[j%3]

			var dailySpend, monthlySpend float64
			switch status {
			case "active":
				if r.Intn(2) == 0 {
					dailySpend = 10 + r.Float64()*seed.dailyBudget*0.7
					monthlySpend = 100 + r.Float64()*seed.monthlyBudget*0.6
				}
			case "paused":
				// paused campaigns in the seed have blown their budgets
				dailySpend = seed.dailyBudget + 1 + r.Float64()*49
				monthlySpend = seed.monthlyBudget + 10 + r.Float64()*490
			}

			start := time.Now().AddDate(0, 0, -r.Intn(31))
			var end *time.Time
			if r.Intn(2) == 0 {
				e := start.AddDate(0, 0, 30+r.Intn(61))
				end = &e
			}

			_, err = db.Exec(ctx, `INSERT INTO campaigns
    (id, brand_id, name, status, daily_budget, monthly_budget, daily_spend, monthly_spend,
     start_date, end_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now()) ON CONFLICT DO NOTHING`,
				campaignID, brandID, name, status,
				money(seed.dailyBudget), money(seed.monthlyBudget),
				money(dailySpend), money(monthlySpend), start, end)
			if err != nil {
				return err
			}

			if err = seedSchedules(ctx, db, r, campaignID); err != nil {
				return err
			}
			if err = seedSpendLogs(ctx, db, r, campaignID, seed.dailyBudget); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedSchedules gives most campaigns weekday windows and some a weekend one.
// A third of campaigns get no windows at all and run unrestricted.
func seedSchedules(ctx context.Context, db *pgxpool.Pool, r *rand.Rand, campaignID int64) error {
	if r.Intn(3) == 0 {
		return nil
	}
	windows := [][2]string{
		{"09:00:00", "17:00:00"},
		{"08:00:00", "18:00:00"},
		{"10:00:00", "16:00:00"},
		{"06:00:00", "22:00:00"},
	}
	for day := 1; day <= 5; day++ {
		if r.Intn(3) == 2 {
			continue
		}
		w := windows[r.Intn(len(windows))]
		_, err := db.Exec(ctx, `INSERT INTO dayparting_schedules
    (campaign_id, day_of_week, start_time, end_time, is_active)
SELECT $1, $2, $3::time, $4::time, TRUE
WHERE NOT EXISTS (
    SELECT 1 FROM dayparting_schedules WHERE campaign_id = $1 AND day_of_week = $2
)`,
			campaignID, day, w[0], w[1])
		if err != nil {
			return err
		}
	}
	if r.Intn(2) == 0 {
		for _, day := range []int{6, 7} {
			if r.Intn(2) == 1 {
				continue
			}
			_, err := db.Exec(ctx, `INSERT INTO dayparting_schedules
    (campaign_id, day_of_week, start_time, end_time, is_active)
SELECT $1, $2, '10:00:00'::time, '16:00:00'::time, TRUE
WHERE NOT EXISTS (
    SELECT 1 FROM dayparting_schedules WHERE campaign_id = $1 AND day_of_week = $2
)`,
				campaignID, day)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// seedSpendLogs writes a handful of historical ledger entries per campaign,
// spread over the last month. The seed ledger is illustrative only and is not
// reconciled against the campaign counters.
func seedSpendLogs(ctx context.Context, db *pgxpool.Pool, r *rand.Rand, campaignID int64, dailyBudget float64) error {
	var n int64
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM spend_logs WHERE campaign_id = $1`, campaignID).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	maxAmount := dailyBudget * 0.3
	if maxAmount > 50 {
		maxAmount = 50
	}
	for i := 0; i < 1+r.Intn(5); i++ {
		amount := 1 + r.Float64()*(maxAmount-1)
		loggedAt := time.Now().
			Add(-time.Duration(r.Intn(30*24)) * time.Hour).
			Add(-time.Duration(r.Intn(60)) * time.Minute)
		_, err := db.Exec(ctx, `INSERT INTO spend_logs (campaign_id, amount, logged_at, description)
VALUES ($1, $2, $3, $4)`,
			campaignID, money(amount), loggedAt, spendDescriptions[r.Intn(len(spendDescriptions))])
		if err != nil {
			return err
		}
	}
	return nil
}

// money formats a float as a two-decimal numeric literal for inserts.
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
