package domain

import "time"

// SpendLogEntry is one immutable record in the append-only spend ledger.
// Entries are never updated or deleted; the ledger is the source of truth the
// campaign's cached counters are derived from.
type SpendLogEntry struct {
	ID          int64     `json:"id"`
	CampaignID  int64     `json:"campaign_id"`
	Amount      Money     `json:"amount"`
	LoggedAt    time.Time `json:"logged_at"`
	Description string    `json:"description"`
}
