package httpadapter

import (
	"net/http"
	"strconv"

	"adpacer/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// handleListCampaigns returns all campaigns, optionally narrowed by the
// `status` query parameter. An unknown status is HTTP 400.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var status domain.Status
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.Status(s)
		if !status.Valid() {
			http.Error(w, "unknown status", http.StatusBadRequest)
			return
		}
	}
	campaigns, err := h.svc.ListCampaigns(r.Context(), status)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	h.respondJSON(w, http.StatusOK, campaigns)
}

// handleGetCampaign returns one campaign with its dayparting schedules.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, c)
}

// handleSpendLog returns a campaign's most recent ledger entries. The
// optional `limit` query parameter caps the page size.
func (h *Handler) handleSpendLog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var limit int
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}
	entries, err := h.svc.ListSpendLog(r.Context(), id, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.SpendLogEntry{}
	}
	h.respondJSON(w, http.StatusOK, entries)
}
