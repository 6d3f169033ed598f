package domain

import "errors"

var (
	// ErrCampaignNotFound is returned when the requested campaign id does not
	// exist. Adapters map it to 404 so unknown ids never reach a write path.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrInvalidAmount rejects spend amounts that are not strictly positive.
	// The rejection happens before any write, so no partial state is possible.
	ErrInvalidAmount = errors.New("spend amount must be greater than zero")
)
