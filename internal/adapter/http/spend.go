package httpadapter

import (
	"encoding/json"
	"net/http"

	"adpacer/internal/core/domain"
)

// spendRequest is the body of POST /api/v1/spend. Amount accepts both a
// quoted decimal string and a bare number; negative amounts and more than
// two decimal places are rejected at decode time.
type spendRequest struct {
	CampaignID  int64        `json:"campaign_id"`
	Amount      domain.Money `json:"amount"`
	Description string       `json:"description"`
}

// handleRecordSpend records one spend event against a campaign. It returns
// the written ledger entry, the campaign state after the increment and
// whether this spend paused the campaign. Unknown campaigns yield HTTP 404
// and non-positive amounts HTTP 400; neither writes anything.
func (h *Handler) handleRecordSpend(w http.ResponseWriter, r *http.Request) {
	var req spendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.RecordSpend(r.Context(), req.CampaignID, req.Amount, req.Description)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, res)
}
